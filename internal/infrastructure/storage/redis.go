package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

const (
	credentialsKey = "storefront:credentials"
	pingTimeout    = 5 * time.Second
)

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr string
	DB   int
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping")
	}
	return client, nil
}

// RedisStore keeps the credential entry on a fixed Redis key, for setups
// where the client runs on hosts without a stable filesystem.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, creds domain.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encode credentials")
	}
	return errors.Wrap(s.client.Set(ctx, credentialsKey, data, 0).Err(), "store credentials")
}

func (s *RedisStore) Load(ctx context.Context) (domain.Credentials, error) {
	var creds domain.Credentials
	data, err := s.client.Get(ctx, credentialsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return creds, domain.ErrNoCredentials
		}
		return creds, errors.Wrap(err, "read credentials")
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return domain.Credentials{}, errors.Wrap(err, "decode credentials")
	}
	return creds, nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return errors.Wrap(s.client.Del(ctx, credentialsKey).Err(), "delete credentials")
}
