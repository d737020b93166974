package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	SetSession(ctx context.Context, sessionID string, userID string, expiration time.Duration) error
	SessionExists(ctx context.Context, sessionID string) (bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	MarkBlogViewed(ctx context.Context, viewerKey string, blogID int64, expiration time.Duration) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func viewedKey(viewerKey string, blogID int64) string {
	return fmt.Sprintf("blog_viewed:%s:%d", viewerKey, blogID)
}

func (r *redisClient) SetSession(ctx context.Context, sessionID string, userID string, expiration time.Duration) error {
	err := r.client.Set(ctx, sessionKey(sessionID), userID, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error storing session %s: %v", sessionID, err))
		return err
	}
	return nil
}

func (r *redisClient) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error checking session %s: %v", sessionID, err))
		return false, err
	}
	return true, nil
}

func (r *redisClient) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := r.client.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", sessionID, err))
		return err
	}

	if result == 0 {
		logrus.Debug(fmt.Sprintf("Session %s not found for deletion", sessionID))
	}

	return nil
}

// MarkBlogViewed records that a viewer has seen a blog and reports whether
// this was the first time within the marker's lifetime. SETNX makes the check
// and the write one atomic step, so concurrent requests from the same viewer
// cannot both observe "first view".
func (r *redisClient) MarkBlogViewed(ctx context.Context, viewerKey string, blogID int64, expiration time.Duration) (bool, error) {
	firstView, err := r.client.SetNX(ctx, viewedKey(viewerKey, blogID), "1", expiration).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error marking blog %d viewed for %s: %v", blogID, viewerKey, err))
		return false, err
	}
	return firstView, nil
}
