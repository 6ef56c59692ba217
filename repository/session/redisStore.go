// Package session keeps refresh-token ids in Redis.
package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Store interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	// Consume deletes the token and returns its owner; ok is false when the token is unknown.
	Consume(ctx context.Context, jti string) (userID int64, ok bool, err error)
	Revoke(ctx context.Context, jti string) error
}

type redisStore struct{ rdb *redis.Client }

func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
}

func New(rdb *redis.Client) Store { return &redisStore{rdb: rdb} }

func key(jti string) string { return "refresh:" + jti }

func (s *redisStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, key(jti), strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *redisStore) Consume(ctx context.Context, jti string) (int64, bool, error) {
	v, err := s.rdb.GetDel(ctx, key(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *redisStore) Revoke(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, key(jti)).Err()
}
