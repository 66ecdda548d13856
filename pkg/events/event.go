package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	PageCreated  = "PAGE_CREATED"
	PageUpdated  = "PAGE_UPDATED"
	PageDeleted  = "PAGE_DELETED"
	PageImported = "PAGE_IMPORTED"

	BlockCreated    = "BLOCK_CREATED"
	BlockUpdated    = "BLOCK_UPDATED"
	BlockDeleted    = "BLOCK_DELETED"
	BlocksReordered = "BLOCKS_REORDERED"

	MemoCreated   = "MEMO_CREATED"
	MemoUpdated   = "MEMO_UPDATED"
	MemoDeleted   = "MEMO_DELETED"
	MemoAIUpdated = "MEMO_AI_UPDATED"

	// MemoEnrichmentRequested is internal: it drives async AI enrichment and
	// is never relayed to clients.
	MemoEnrichmentRequested = "MEMO_ENRICHMENT_REQUESTED"
)

// WorkspaceTopic is the live-update channel every client can follow.
const WorkspaceTopic = "workspace"

// Event defines the contract for all system events.
type Event interface {
	// EventID is unique per occurrence and used for de-duplication.
	EventID() string

	// EventType returns the unique code for this event (e.g., "PAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Id         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = map[string]interface{}{}
	}
	return BaseEvent{
		Id:         uuid.NewString(),
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string {
	return e.Id
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Marshal encodes any Event as the JSON envelope used on every transport.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Id:         e.EventID(),
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Unmarshal(b []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(b, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}

// PageTopic is the live-update channel scoped to a single page.
func PageTopic(pageID int64) string {
	return fmt.Sprintf("page:%d", pageID)
}

// Topics lists the live-update channels an event is delivered to.
func Topics(e Event) []string {
	topics := []string{WorkspaceTopic}
	if id, ok := Int64(e.Payload(), "page_id"); ok {
		topics = append(topics, PageTopic(id))
	}
	return topics
}

// Int64 reads a numeric field that may have round-tripped through JSON.
func Int64(data map[string]interface{}, key string) (int64, bool) {
	switch v := data[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}
