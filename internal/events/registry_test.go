package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Unmarshal(t *testing.T) {
	r := DefaultRegistry()

	original := &SyncCategoryCompleted{
		BaseEvent: NewBaseEvent(EventSyncCategoryCompleted, EntitySyncRun, 0),
		RunID:     "9f2b1c9e-0000-0000-0000-000000000000",
		Category:  "transfer",
		Written:   12,
		Skipped:   2,
		Failed:    1,
		ElapsedMS: 340,
	}
	payload, err := json.Marshal(original)
	require.NoError(t, err)

	event, err := r.Unmarshal(RawEvent{
		EventType: EventSyncCategoryCompleted,
		Payload:   string(payload),
	})
	require.NoError(t, err)

	got, ok := event.(*SyncCategoryCompleted)
	require.True(t, ok)
	assert.Equal(t, "transfer", got.Category)
	assert.Equal(t, 12, got.Written)
	assert.Equal(t, original.RunID, got.RunID)
}

func TestRegistry_UnknownType(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.Unmarshal(RawEvent{EventType: "unknown.event", Payload: "{}"})
	assert.Error(t, err)
}
