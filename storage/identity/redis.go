package identity

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/tkabila/shajara/core/session"
)

const (
	redisIdentityKey = "shajara:identity"
	redisTimeout     = 5 * time.Second
)

// RedisStore keeps the serialized identity under a single Redis key, for
// deployments where the side-channel should outlive the host.
type RedisStore struct {
	client *redis.Client
}

var _ session.IdentityStore = (*RedisStore)(nil)

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis URL")
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, redisIdentityKey, token, 0).Err(); err != nil {
		return errors.Wrap(err, "storing identity")
	}
	return nil
}

func (s *RedisStore) Load() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	token, err := s.client.Get(ctx, redisIdentityKey).Result()
	if err == redis.Nil {
		return "", session.ErrNoIdentity
	}
	if err != nil {
		return "", errors.Wrap(err, "loading identity")
	}
	return token, nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Del(ctx, redisIdentityKey).Err(); err != nil {
		return errors.Wrap(err, "clearing identity")
	}
	return nil
}
