package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CustomerLocker serializes balance mutations for a single customer.
type CustomerLocker interface {
	Lock(ctx context.Context, customerID int64) (unlock func(), err error)
}

// LocalLocker is an in-process keyed mutex. It only serializes requests
// handled by the same process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[int64]*localLock
}

type localLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[int64]*localLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, customerID int64) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[customerID]
	if !ok {
		entry = &localLock{ch: make(chan struct{}, 1)}
		l.locks[customerID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(customerID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.release(customerID, entry)
		})
	}, nil
}

func (l *LocalLocker) release(customerID int64, entry *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, customerID)
	}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds the customer lock in Redis so several API instances
// share it. The lock expires after ttl if the holder dies.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *RedisLocker) Lock(ctx context.Context, customerID int64) (func(), error) {
	key := fmt.Sprintf("loyalty:customer:%d:lock", customerID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire customer lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				log.WithError(err).WithField("customer_id", customerID).Warn("release customer lock failed")
			}
		})
	}, nil
}
