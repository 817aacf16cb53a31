package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var NilError = goredis.Nil

type Options = goredis.UniversalOptions

// Adapter is the subset of redis operations the gateway uses. The token cache
// is the only consumer; keep this interface small.
type Adapter interface {
	Set(key string, value []byte, ttl time.Duration) error
	Get(key string) ([]byte, error)
	Del(key string) error
	Exist(key string) (int64, error)
	Client() goredis.UniversalClient
}

type adapter struct {
	name      string
	keyPrefix string
	client    goredis.UniversalClient
}

func NewAdapter(name, keyPrefix string, opts *Options) (Adapter, error) {
	client := goredis.NewUniversalClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &adapter{
		name:      name,
		keyPrefix: keyPrefix,
		client:    client,
	}, nil
}

func (a *adapter) key(k string) string {
	if a.keyPrefix == "" {
		return k
	}
	return a.keyPrefix + ":" + k
}

func (a *adapter) Set(key string, value []byte, ttl time.Duration) error {
	return a.client.Set(context.Background(), a.key(key), value, ttl).Err()
}

func (a *adapter) Get(key string) ([]byte, error) {
	return a.client.Get(context.Background(), a.key(key)).Bytes()
}

func (a *adapter) Del(key string) error {
	return a.client.Del(context.Background(), a.key(key)).Err()
}

func (a *adapter) Exist(key string) (int64, error) {
	return a.client.Exists(context.Background(), a.key(key)).Result()
}

func (a *adapter) Client() goredis.UniversalClient {
	return a.client
}
