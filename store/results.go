package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minaorangina/mancala/game"
	"github.com/redis/go-redis/v9"
)

const resultKeyPrefix = "mancala:result:"

var ErrResultNotFound = errors.New("result not found")

// ResultStore keeps the outcome of finished games
type ResultStore interface {
	SaveResult(ctx context.Context, gameID string, result game.Result) error
	FindResult(ctx context.Context, gameID string) (game.Result, error)
}

// InMemoryResultStore keeps results for the life of the process
type InMemoryResultStore struct {
	results map[string]game.Result
	mu      sync.RWMutex
}

func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{results: map[string]game.Result{}}
}

func (s *InMemoryResultStore) SaveResult(_ context.Context, gameID string, result game.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[gameID] = result
	return nil
}

func (s *InMemoryResultStore) FindResult(_ context.Context, gameID string) (game.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[gameID]
	if !ok {
		return game.Result{}, ErrResultNotFound
	}
	return result, nil
}

// resultClient is the part of a redis client the result store needs
type resultClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisResultStore keeps results as JSON, each expiring after ttl
type RedisResultStore struct {
	client resultClient
	ttl    time.Duration
}

func NewRedisResultStore(client resultClient, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{client: client, ttl: ttl}
}

func (s *RedisResultStore) SaveResult(ctx context.Context, gameID string, result game.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not encode result for game %s: %w", gameID, err)
	}

	return s.client.Set(ctx, resultKey(gameID), data, s.ttl).Err()
}

func (s *RedisResultStore) FindResult(ctx context.Context, gameID string) (game.Result, error) {
	data, err := s.client.Get(ctx, resultKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return game.Result{}, ErrResultNotFound
		}
		return game.Result{}, err
	}

	var result game.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return game.Result{}, fmt.Errorf("could not decode result for game %s: %w", gameID, err)
	}
	return result, nil
}

func resultKey(gameID string) string {
	return resultKeyPrefix + gameID
}

// NewRedisClient connects to redis and checks it is reachable
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctxPing).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	return client, nil
}
