package events

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical event shape used across OpenWave modules.
// Outbox rows persist a marshalled Envelope and the worker relay republishes
// it unchanged, so fields must stay backward compatible.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAtUTC time.Time       `json:"occurred_at_utc"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	PartitionKey  string          `json:"partition_key"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}
