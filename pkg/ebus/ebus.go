// Package ebus is a small topic based publish/subscribe bus for gauge
// values. The last value of every topic is cached: publishing an unchanged
// value is dropped and new subscribers get the cached value right away.
package ebus

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

var (
	ErrFull   = errors.New("publish channel full")
	ErrClosed = errors.New("bus closed")
)

const (
	DefaultTTL    = 1 * time.Minute
	DefaultBuffer = 100
)

type Message struct {
	Topic string
	Value float64
}

type Option func(*Bus)

// WithTTL sets how long the last value of a topic is remembered.
func WithTTL(ttl time.Duration) Option {
	return func(b *Bus) { b.ttl = ttl }
}

// WithBuffer sets the publish and per subscriber channel sizes.
func WithBuffer(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithDebug logs subscribe and unsubscribe events.
func WithDebug(debug bool) Option {
	return func(b *Bus) { b.debug = debug }
}

type Bus struct {
	ttl    time.Duration
	buffer int
	debug  bool

	cache *ttlcache.Cache[string, float64]
	in    chan Message

	mu     sync.Mutex
	subs   map[string]map[uuid.UUID]chan float64
	all    map[uuid.UUID]chan Message
	topics map[uuid.UUID]string
	closed bool
}

func New(opts ...Option) *Bus {
	b := &Bus{
		ttl:    DefaultTTL,
		buffer: DefaultBuffer,
		subs:   make(map[string]map[uuid.UUID]chan float64),
		all:    make(map[uuid.UUID]chan Message),
		topics: make(map[uuid.UUID]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.cache = ttlcache.New[string, float64](
		ttlcache.WithTTL[string, float64](b.ttl),
	)
	b.in = make(chan Message, b.buffer)
	return b
}

// Run dispatches published values until ctx is done, then closes every
// subscriber channel.
func (b *Bus) Run(ctx context.Context) error {
	go b.cache.Start()
	defer b.cache.Stop()
	defer b.close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-b.in:
			b.dispatch(msg)
		}
	}
}

func (b *Bus) dispatch(msg Message) {
	if itm := b.cache.Get(msg.Topic); itm != nil && itm.Value() == msg.Value {
		return
	}
	b.cache.Set(msg.Topic, msg.Value, ttlcache.DefaultTTL)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.all {
		select {
		case sub <- msg:
		default:
		}
	}
	for _, sub := range b.subs[msg.Topic] {
		select {
		case sub <- msg.Value:
		default:
		}
	}
}

func (b *Bus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.all {
		close(ch)
		delete(b.all, id)
	}
	for topic, subs := range b.subs {
		for id, ch := range subs {
			close(ch)
			delete(b.topics, id)
		}
		delete(b.subs, topic)
	}
}

// Publish queues a value without blocking.
func (b *Bus) Publish(topic string, value float64) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}
	select {
	case b.in <- Message{Topic: topic, Value: value}:
		return nil
	default:
		return ErrFull
	}
}

// Last returns the cached value of topic.
func (b *Bus) Last(topic string) (float64, bool) {
	if itm := b.cache.Get(topic); itm != nil {
		return itm.Value(), true
	}
	return 0, false
}

// Subscribe returns a channel receiving the values of topic, starting with
// the cached one if any. Slow subscribers miss values.
func (b *Bus) Subscribe(topic string) (uuid.UUID, <-chan float64) {
	id := uuid.New()
	ch := make(chan float64, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	if b.debug {
		log.Println("Subscribe", topic, id)
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[uuid.UUID]chan float64)
	}
	b.subs[topic][id] = ch
	b.topics[id] = topic
	if v, ok := b.Last(topic); ok {
		ch <- v
	}
	return id, ch
}

// SubscribeFunc calls f for every value of topic on its own goroutine and
// returns a function that unsubscribes.
func (b *Bus) SubscribeFunc(topic string, f func(float64)) func() {
	id, ch := b.Subscribe(topic)
	go func() {
		for v := range ch {
			f(v)
		}
	}()
	return func() { b.Unsubscribe(id) }
}

// SubscribeAll returns a channel receiving every published message, starting
// with the cached value of each topic.
func (b *Bus) SubscribeAll() (uuid.UUID, <-chan Message) {
	id := uuid.New()
	ch := make(chan Message, b.buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.all[id] = ch
	b.cache.Range(func(item *ttlcache.Item[string, float64]) bool {
		select {
		case ch <- Message{Topic: item.Key(), Value: item.Value()}:
			return true
		default:
			return false
		}
	})
	return id, ch
}

func (b *Bus) SubscribeAllFunc(f func(topic string, value float64)) func() {
	id, ch := b.SubscribeAll()
	go func() {
		for msg := range ch {
			f(msg.Topic, msg.Value)
		}
	}()
	return func() { b.Unsubscribe(id) }
}

// Unsubscribe closes the subscription channel. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.all[id]; ok {
		close(ch)
		delete(b.all, id)
		return
	}
	topic, ok := b.topics[id]
	if !ok {
		return
	}
	if b.debug {
		log.Println("Unsubscribe", topic, id)
	}
	close(b.subs[topic][id])
	delete(b.subs[topic], id)
	delete(b.topics, id)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}
