package mq

import (
	"fmt"
)

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	UserId     string `json:"user_id"`
}

// Emit publishes an index event for the search/indexing pipeline.
// TODO: replace the stdout sink with the real emitter once the indexer
// service is deployed.
func Emit(eventName string, content Index) error {
	fmt.Println(eventName, "emitted", content)
	return nil
}
