package utils

import (
	"context"

	"platemate/globals"
	"platemate/models"
)

func GetUserIDFromContext(ctx context.Context) string {
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(globals.UserKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
