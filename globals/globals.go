package globals

type contextKey string

const (
	UserIDKey    contextKey = "userId"
	UserKey      contextKey = "user"
	RequestIDKey contextKey = "requestId"
)
