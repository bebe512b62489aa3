package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
)

// AuditLocker serialises night audit runs for one date across processes.
type AuditLocker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// RedisAuditLocker obtains the lock from redis. It does not retry: a held
// lock means another process is closing the same date.
type RedisAuditLocker struct {
	Client *redislock.Client
}

func (l RedisAuditLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lock, err := l.Client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrAuditInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
