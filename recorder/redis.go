package recorder

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

type RedisRecorder struct {
	rdclient *redis.Client
	ttl      time.Duration
}

// NewRedisRecorder creates a recorder backed by redis. Records expire after
// ttl; zero keeps them forever.
func NewRedisRecorder(redisAddr string, redisPW string, redisDB int, ttl time.Duration) *RedisRecorder {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisRecorder{
		rdclient: rdclient,
		ttl:      ttl,
	}
}

// Ping checks that the server is reachable.
func (r *RedisRecorder) Ping(ctx context.Context) error {
	return errors.Wrap(r.rdclient.Ping(ctx).Err(), "redis ping")
}

func (r *RedisRecorder) Save(record *RoundRecord) error {
	return r.save(RecordKey(record.SessionID, record.RoundNum), record)
}

func (r *RedisRecorder) save(key string, record *RoundRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}
	err = r.rdclient.Set(context.Background(), key, data, r.ttl).Err()
	return errors.Wrapf(err, "could not save %s", key)
}

func (r *RedisRecorder) Load(sessionID string, roundNum int) (*RoundRecord, error) {
	return r.load(RecordKey(sessionID, roundNum))
}

func (r *RedisRecorder) load(key string) (*RoundRecord, error) {
	data, err := r.rdclient.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, NotFoundError{Key: key}
	} else if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

func (r *RedisRecorder) Remove(sessionID string, roundNum int) error {
	return r.rdclient.Del(context.Background(), RecordKey(sessionID, roundNum)).Err()
}

func (r *RedisRecorder) Close() error {
	return r.rdclient.Close()
}
