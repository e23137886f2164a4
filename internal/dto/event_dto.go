package dto

import "time"

// PipelineEventMessage is the envelope carried on the in-process event
// topic and mirrored to external buses.
type PipelineEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
