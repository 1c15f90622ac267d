package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed")
		return event
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
		return Event[T]{}
	}
}

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(ChangedEvent, "/tmp/notes.txt")

	event := receive(t, ch)
	require.Equal(t, "/tmp/notes.txt", event.Payload)
	require.Equal(t, ChangedEvent, event.Type)
	require.False(t, event.Timestamp.IsZero())
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx := context.Background()
	subs := []<-chan Event[string]{broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(RemovedEvent, "a.txt")

	for _, ch := range subs {
		event := receive(t, ch)
		require.Equal(t, RemovedEvent, event.Type)
		require.Equal(t, "a.txt", event.Payload)
	}
}

func TestBroker_ContextCancellation(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_PublishNeverBlocks(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		broker.Publish(ChangedEvent, 1)
		broker.Publish(ChangedEvent, 2)
		broker.Publish(ChangedEvent, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "Publish blocked")
	}

	require.Equal(t, 1, receive(t, ch).Payload)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()
	ch := broker.Subscribe(ctx)

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
	require.Equal(t, 0, broker.SubscriberCount())

	late := broker.Subscribe(ctx)
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")

	require.NotPanics(t, func() { broker.Publish(ChangedEvent, "x") })
}

func TestBroker_CancelAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	broker.Subscribe(ctx)

	broker.Close()
	require.NotPanics(t, func() {
		cancel()
		time.Sleep(10 * time.Millisecond)
	})
}
