package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedEvent(id int64, runID string) *SyncRunStarted {
	return &SyncRunStarted{
		BaseEvent:  NewBaseEvent(EventSyncRunStarted, EntitySyncRun, id),
		RunID:      runID,
		Categories: []string{"transfer"},
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventSyncRunStarted, 10)

	err := bus.Publish(context.Background(), startedEvent(1, "run-1"))
	require.NoError(t, err)

	select {
	case received := <-ch:
		assert.Equal(t, EventSyncRunStarted, received.EventType())
		assert.Equal(t, EntitySyncRun, received.EntityType())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_TypeFilter(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventSyncRunCompleted, 10)

	require.NoError(t, bus.Publish(context.Background(), startedEvent(1, "run-1")))
	require.NoError(t, bus.Publish(context.Background(), &SyncRunCompleted{
		BaseEvent: NewBaseEvent(EventSyncRunCompleted, EntitySyncRun, 1),
		RunID:     "run-1",
		Written:   3,
	}))

	select {
	case received := <-ch:
		assert.Equal(t, EventSyncRunCompleted, received.EventType())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	select {
	case e := <-ch:
		t.Fatalf("unexpected second event %s", e.EventType())
	default:
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	require.NoError(t, bus.Publish(context.Background(), startedEvent(1, "run-1")))
	require.NoError(t, bus.Publish(context.Background(), &SyncRunAborted{
		BaseEvent: NewBaseEvent(EventSyncRunAborted, EntitySyncRun, 1),
		RunID:     "run-1",
		Reason:    "source unavailable",
	}))

	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}
	assert.Len(t, received, 2)
	assert.Equal(t, EventSyncRunAborted, received[1].EventType())
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventSyncRunStarted, 10)
	bus.Unsubscribe(ch)

	// Publishing after unsubscribe must not block or panic.
	require.NoError(t, bus.Publish(context.Background(), startedEvent(1, "run-1")))

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, nil)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.NoError(t, bus.Publish(context.Background(), startedEvent(1, "run-1")))
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = bus.Publish(context.Background(), startedEvent(int64(n), "run"))
		}(i)
	}
	wg.Wait()

	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}
	assert.Equal(t, 10, count)
}
