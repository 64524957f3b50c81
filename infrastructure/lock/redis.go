package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/seller-sync/internal/config"
)

// SyncLockKey é a chave compartilhada por todas as réplicas do serviço.
const SyncLockKey = "lock:seller-sync:run"

// ErrHeld indica que outra réplica já está executando o sync.
var ErrHeld = errors.New("sync já em execução em outra instância")

type Release func(ctx context.Context) error

// Locker garante uma única execução de sync entre réplicas.
type Locker interface {
	Acquire(ctx context.Context) (Release, error)
}

type RedisLocker struct {
	rdb    *redis.Client
	locker *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker conecta no Redis e cria o lock distribuído da execução de sync.
func NewRedisLocker(ctx context.Context, cfg config.Redis) (*RedisLocker, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("erro ao conectar no redis %s: %w", cfg.Addr, err)
	}

	ttl := cfg.LockTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return &RedisLocker{
		rdb:    rdb,
		locker: redislock.New(rdb),
		ttl:    ttl,
	}, nil
}

// Acquire tenta obter o lock uma única vez, sem espera.
func (l *RedisLocker) Acquire(ctx context.Context) (Release, error) {
	held, err := l.locker.Obtain(ctx, SyncLockKey, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrHeld
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao obter lock do sync: %w", err)
	}

	return func(ctx context.Context) error {
		err := held.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			logrus.Warn("scheduler: sync lock expired before release")
			return nil
		}
		return err
	}, nil
}

func (l *RedisLocker) Close() error {
	return l.rdb.Close()
}
