// Package redisstore is the Datastore Adapter: a minimal typed interface
// over a Redis server, deliberately narrow so the rest of the app never
// needs to know it is talking to Redis specifically.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DataType tags the shape of a stored value.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeString
	TypeList
	TypeSet
	TypeOrderedSet
	TypeHash
	TypeStream
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "STRING"
	case TypeList:
		return "LIST"
	case TypeSet:
		return "SET"
	case TypeOrderedSet:
		return "ZSET"
	case TypeHash:
		return "HASH"
	case TypeStream:
		return "STREAM"
	default:
		return "-"
	}
}

func typeFromRedis(s string) DataType {
	switch s {
	case "string":
		return TypeString
	case "list":
		return TypeList
	case "set":
		return TypeSet
	case "zset":
		return TypeOrderedSet
	case "hash":
		return TypeHash
	case "stream":
		return TypeStream
	default:
		return TypeUnknown
	}
}

// Member is one (member, score) pair of an OrderedSet, in ascending-score
// order as returned by the adapter.
type Member struct {
	Member string
	Score  float64
}

// Field is one (field, value) pair of a Hash. Fetch builds the fields from
// the map go-redis returns for HGETALL, so their order is not defined and
// can differ between two fetches of the same key.
type Field struct {
	Name  string
	Value string
}

// Value carries a typed payload. Exactly one field is populated, selected
// by Type.
type Value struct {
	Type   DataType
	String string
	List   []string
	Set    []string
	ZSet   []Member
	Hash   []Field
}

// Store is the narrow surface the rest of the app depends on. Swapping the
// concrete datastore never requires touching any caller of this interface.
type Store interface {
	Enumerate(ctx context.Context, pattern string) ([]string, error)
	ProbeType(ctx context.Context, key string) (DataType, error)
	Fetch(ctx context.Context, key string, dt DataType) (Value, error)
	TTL(ctx context.Context, key string) (int64, error)
	WriteString(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RedisStore implements Store against a real Redis server via go-redis.
type RedisStore struct {
	client *redis.Client
}

// Options mirrors the subset of connection parameters the CLI surface (§6)
// exposes.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect dials Redis and verifies connectivity with a PING, matching §7's
// StartupFatal contract (callers should treat a non-nil error as fatal).
func Connect(ctx context.Context, opts Options) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

// Enumerate yields all keys matching pattern using incremental cursor-based
// SCAN; it never issues an unbounded KEYS call.
func (s *RedisStore) Enumerate(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 0).Result()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

// ProbeType reports the stored type of key.
func (s *RedisStore) ProbeType(ctx context.Context, key string) (DataType, error) {
	kind, err := s.client.Type(ctx, key).Result()
	if err != nil {
		return TypeUnknown, fmt.Errorf("type %s: %w", key, err)
	}
	return typeFromRedis(kind), nil
}

// Fetch returns the typed value for key, dispatching on dt.
func (s *RedisStore) Fetch(ctx context.Context, key string, dt DataType) (Value, error) {
	switch dt {
	case TypeString:
		v, err := s.client.Get(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return Value{}, fmt.Errorf("get %s: %w", key, err)
		}
		return Value{Type: TypeString, String: v}, nil

	case TypeList:
		v, err := s.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return Value{}, fmt.Errorf("lrange %s: %w", key, err)
		}
		return Value{Type: TypeList, List: v}, nil

	case TypeSet:
		v, err := s.client.SMembers(ctx, key).Result()
		if err != nil {
			return Value{}, fmt.Errorf("smembers %s: %w", key, err)
		}
		return Value{Type: TypeSet, Set: v}, nil

	case TypeOrderedSet:
		v, err := s.client.ZRangeWithScores(ctx, key, 0, -1).Result()
		if err != nil {
			return Value{}, fmt.Errorf("zrange %s: %w", key, err)
		}
		members := make([]Member, 0, len(v))
		for _, z := range v {
			members = append(members, Member{Member: fmt.Sprint(z.Member), Score: z.Score})
		}
		return Value{Type: TypeOrderedSet, ZSet: members}, nil

	case TypeHash:
		v, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return Value{}, fmt.Errorf("hgetall %s: %w", key, err)
		}
		fields := make([]Field, 0, len(v))
		for k, val := range v {
			fields = append(fields, Field{Name: k, Value: val})
		}
		return Value{Type: TypeHash, Hash: fields}, nil

	case TypeStream:
		return Value{Type: TypeStream, String: "<stream>"}, nil

	default:
		return Value{Type: TypeUnknown}, nil
	}
}

// TTL returns the key's remaining lifetime: -1 means no expiry, -2 means
// missing, matching the Redis TTL contract directly.
func (s *RedisStore) TTL(ctx context.Context, key string) (int64, error) {
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("ttl %s: %w", key, err)
	}
	switch {
	case d == -1:
		return -1, nil
	case d == -2:
		return -2, nil
	default:
		return int64(d.Seconds()), nil
	}
}

// WriteString replaces key's value, preserving any existing TTL.
func (s *RedisStore) WriteString(ctx context.Context, key string, value []byte) error {
	args := redis.SetArgs{KeepTTL: true}
	if err := s.client.SetArgs(ctx, key, value, args).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
