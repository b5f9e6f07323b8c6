package live

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"textbook-logistics/internal/logx"
)

// DispatchFunc receives a frame published for a delivery.
type DispatchFunc func(deliveryID int64, payload []byte)

// Broker carries frames between service instances.
type Broker interface {
	Publish(ctx context.Context, deliveryID int64, payload []byte) error
	// Subscribe delivers every published frame to fn until ctx is done.
	Subscribe(ctx context.Context, fn DispatchFunc) error
}

// MemoryBroker is a single-process Broker.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[int]DispatchFunc
	next int
}

// NewMemoryBroker creates a new MemoryBroker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]DispatchFunc)}
}

// Publish hands payload to every subscriber.
func (b *MemoryBroker) Publish(_ context.Context, deliveryID int64, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.subs {
		fn(deliveryID, payload)
	}
	return nil
}

// Subscribe registers fn and blocks until ctx is done.
func (b *MemoryBroker) Subscribe(ctx context.Context, fn DispatchFunc) error {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	<-ctx.Done()

	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
	return nil
}

const redisChannelPrefix = "delivery:live:"

// RedisBroker fans frames out over Redis pub/sub.
type RedisBroker struct {
	rdb    redis.UniversalClient
	logger logx.Logger
}

// NewRedisBroker creates a new RedisBroker.
func NewRedisBroker(rdb redis.UniversalClient, logger logx.Logger) *RedisBroker {
	return &RedisBroker{rdb: rdb, logger: logger}
}

// Publish publishes payload on the delivery channel.
func (b *RedisBroker) Publish(ctx context.Context, deliveryID int64, payload []byte) error {
	return b.rdb.Publish(ctx, redisChannelPrefix+strconv.FormatInt(deliveryID, 10), payload).Err()
}

// Subscribe listens on every delivery channel until ctx is done.
func (b *RedisBroker) Subscribe(ctx context.Context, fn DispatchFunc) error {
	ps := b.rdb.PSubscribe(ctx, redisChannelPrefix+"*")
	defer ps.Close()

	// wait for the subscription confirmation
	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			id, err := strconv.ParseInt(strings.TrimPrefix(msg.Channel, redisChannelPrefix), 10, 64)
			if err != nil {
				b.logger.Warn("live: bad channel name", logx.String("channel", msg.Channel))
				continue
			}
			fn(id, []byte(msg.Payload))
		}
	}
}
