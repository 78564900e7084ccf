package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "explorer"
	sessionKeyFmt = "%s:session:%s"
	lockKeySuffix = ":lock"

	fieldSnapshot  = "snapshot"
	fieldStartedAt = "startedAt"
	fieldRecorded  = "recorded"

	lockExpiry = 5 * time.Second
	lockTries  = 20
)

var ErrSessionExists = errors.New("session already exists")

// RedisSessionStore keeps sessions as redis hashes that expire after a
// period without writes. Each session has its own redsync lock.
type RedisSessionStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

var _ i.SessionStore = &RedisSessionStore{}

// NewRedisSessionStore initializes a RedisSessionStore with the provided Redis client and TTL.
func NewRedisSessionStore(client *redis.Client, ttlSeconds int, prefix string) (*RedisSessionStore, error) {
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %d", ttlSeconds)
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	store := &RedisSessionStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		prefix: prefix,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Create stores a new session. It fails with ErrSessionExists if the ID is taken.
func (rs *RedisSessionStore) Create(ctx context.Context, id uuid.UUID, s *i.StoredSession) error {
	key := rs.key(id)
	created, err := rs.client.HSetNX(ctx, key, fieldSnapshot, s.Snapshot).Result()
	if err != nil {
		return err
	}
	if !created {
		return ErrSessionExists
	}

	return rs.write(ctx, key, s)
}

// Load returns the stored session or dmn.ErrSessionNotFound.
func (rs *RedisSessionStore) Load(ctx context.Context, id uuid.UUID) (*i.StoredSession, error) {
	fields, err := rs.client.HGetAll(ctx, rs.key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, dmn.ErrSessionNotFound
	}
	return decodeFields(fields)
}

// Save overwrites an existing session and refreshes its expiry.
func (rs *RedisSessionStore) Save(ctx context.Context, id uuid.UUID, s *i.StoredSession) error {
	key := rs.key(id)
	exists, err := rs.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return dmn.ErrSessionNotFound
	}

	return rs.write(ctx, key, s)
}

// Lock acquires the session's distributed lock, retrying until ctx is done
// or the retries run out.
func (rs *RedisSessionStore) Lock(ctx context.Context, id uuid.UUID) (i.UnlockFunc, error) {
	mutex := rs.locker.NewMutex(rs.key(id)+lockKeySuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("locking session %s: %w", id, err)
	}

	return func(ctx context.Context) error {
		_, err := mutex.UnlockContext(ctx)
		return err
	}, nil
}

func (rs *RedisSessionStore) write(ctx context.Context, key string, s *i.StoredSession) error {
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, encodeFields(s))
		pipe.Expire(ctx, key, rs.ttl)
		return nil
	})
	return err
}

func (rs *RedisSessionStore) key(id uuid.UUID) string {
	return fmt.Sprintf(sessionKeyFmt, rs.prefix, id)
}

func encodeFields(s *i.StoredSession) map[string]interface{} {
	return map[string]interface{}{
		fieldSnapshot:  s.Snapshot,
		fieldStartedAt: s.StartedAt.UTC().Format(time.RFC3339Nano),
		fieldRecorded:  strconv.FormatBool(s.Recorded),
	}
}

func decodeFields(fields map[string]string) (*i.StoredSession, error) {
	snapshot, ok := fields[fieldSnapshot]
	if !ok {
		return nil, fmt.Errorf("stored session has no %s field", fieldSnapshot)
	}

	startedAt, err := time.Parse(time.RFC3339Nano, fields[fieldStartedAt])
	if err != nil {
		return nil, fmt.Errorf("stored session %s: %w", fieldStartedAt, err)
	}

	recorded, err := strconv.ParseBool(fields[fieldRecorded])
	if err != nil {
		return nil, fmt.Errorf("stored session %s: %w", fieldRecorded, err)
	}

	return &i.StoredSession{
		Snapshot:  []byte(snapshot),
		StartedAt: startedAt,
		Recorded:  recorded,
	}, nil
}
