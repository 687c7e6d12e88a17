package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lodnet/luach/internal/models"
)

const submissionPrefix = "submission:"

// RedisStore is the durable SubmissionStore swap-in for deployments that
// cannot rely on a local JSON file.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func newRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) List(ctx context.Context) ([]models.Submission, error) {
	iter := s.client.Scan(ctx, 0, submissionPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning submissions: %w", err)
	}

	submissions := make([]models.Submission, 0, len(keys))
	for _, key := range keys {
		val, err := s.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading submission %s: %w", key, err)
		}
		var sub models.Submission
		if err := json.Unmarshal(val, &sub); err != nil {
			return nil, fmt.Errorf("parsing submission %s: %w", key, err)
		}
		submissions = append(submissions, sub)
	}
	return submissions, nil
}

func (s *RedisStore) Add(ctx context.Context, submission models.Submission) error {
	data, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}
	return s.client.Set(ctx, submissionPrefix+submission.ID, data, 0).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.Submission, error) {
	val, err := s.client.Get(ctx, submissionPrefix+id).Bytes()
	if err == redis.Nil {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("reading submission %s: %w", id, err)
	}
	var sub models.Submission
	if err := json.Unmarshal(val, &sub); err != nil {
		return models.Submission{}, fmt.Errorf("parsing submission %s: %w", id, err)
	}
	return sub, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.client.Del(ctx, submissionPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("deleting submission %s: %w", id, err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
