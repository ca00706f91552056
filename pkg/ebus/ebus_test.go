package ebus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBus(t *testing.T, opts ...ebus.Option) *ebus.Bus {
	t.Helper()
	bus := ebus.New(opts...)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return bus
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	var zero T
	return zero
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		data  float64
	}{
		{name: "positive", topic: "speed", data: 1.23},
		{name: "negative", topic: "temp", data: -40},
		{name: "empty topic", topic: "", data: 0},
	}
	bus := runBus(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, bus.Publish(tt.topic, tt.data))
		})
	}
}

func TestPublishFull(t *testing.T) {
	// not running, nothing drains the queue
	bus := ebus.New(ebus.WithBuffer(2))
	require.NoError(t, bus.Publish("a", 1))
	require.NoError(t, bus.Publish("a", 2))
	assert.ErrorIs(t, bus.Publish("a", 3), ebus.ErrFull)
}

func TestSubscribe(t *testing.T) {
	bus := runBus(t)
	id, ch := bus.Subscribe("rpm")
	assert.NotEqual(t, uuid.Nil, id)

	require.NoError(t, bus.Publish("rpm", 3.14))
	assert.Equal(t, 3.14, receive(t, ch))

	bus.Unsubscribe(id)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestSubscribeReplaysLastValue(t *testing.T) {
	bus := runBus(t)
	_, first := bus.Subscribe("boost")
	require.NoError(t, bus.Publish("boost", 1.5))
	assert.Equal(t, 1.5, receive(t, first))

	v, ok := bus.Last("boost")
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, late := bus.Subscribe("boost")
	assert.Equal(t, 1.5, receive(t, late))
}

func TestDuplicateValuesDropped(t *testing.T) {
	bus := runBus(t)
	_, ch := bus.Subscribe("lambda")
	for _, v := range []float64{1, 1, 1, 2, 2, 1} {
		require.NoError(t, bus.Publish("lambda", v))
	}
	assert.Equal(t, 1.0, receive(t, ch))
	assert.Equal(t, 2.0, receive(t, ch))
	assert.Equal(t, 1.0, receive(t, ch))

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeFunc(t *testing.T) {
	bus := runBus(t)
	var mu sync.Mutex
	var got []float64
	received := make(chan struct{}, 10)

	unsub := bus.SubscribeFunc("map", func(v float64) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		received <- struct{}{}
	})
	require.NoError(t, bus.Publish("map", 10))
	require.NoError(t, bus.Publish("other", 11))
	require.NoError(t, bus.Publish("map", 12))
	receive(t, received)
	receive(t, received)
	unsub()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{10, 12}, got)
}

func TestSubscribeAll(t *testing.T) {
	bus := runBus(t)
	_, topic := bus.Subscribe("a")
	require.NoError(t, bus.Publish("a", 1))
	receive(t, topic)

	id, all := bus.SubscribeAll()
	assert.Equal(t, ebus.Message{Topic: "a", Value: 1}, receive(t, all))

	require.NoError(t, bus.Publish("b", 2))
	assert.Equal(t, ebus.Message{Topic: "b", Value: 2}, receive(t, all))

	bus.Unsubscribe(id)
	_, ok := <-all
	assert.False(t, ok)
}

func TestSubscribeAllFunc(t *testing.T) {
	bus := runBus(t)
	received := make(chan ebus.Message, 10)
	unsub := bus.SubscribeAllFunc(func(topic string, value float64) {
		received <- ebus.Message{Topic: topic, Value: value}
	})
	require.NoError(t, bus.Publish("rpm", 900))
	require.NoError(t, bus.Publish("boost", 1.2))
	assert.Equal(t, ebus.Message{Topic: "rpm", Value: 900}, receive(t, received))
	assert.Equal(t, ebus.Message{Topic: "boost", Value: 1.2}, receive(t, received))
	unsub()

	require.NoError(t, bus.Publish("rpm", 1000))
	select {
	case msg := <-received:
		t.Fatalf("unexpected message after unsubscribe: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunClosesSubscribers(t *testing.T) {
	bus := ebus.New()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- bus.Run(ctx) }()

	id, ch := bus.Subscribe("x")
	cancel()
	assert.ErrorIs(t, receive(t, errc), context.Canceled)

	_, ok := <-ch
	assert.False(t, ok)
	bus.Unsubscribe(id)
	assert.ErrorIs(t, bus.Publish("x", 1), ebus.ErrClosed)
}
