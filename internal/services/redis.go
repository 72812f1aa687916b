package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fleetdesk/fleetdesk-backend/internal/booking"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

const transportFeesKey = "settings:transport-fees"

// SetCachedTransportFees caches the transport fee config for 5 minutes
func SetCachedTransportFees(ctx context.Context, fees booking.TransportFees) error {
	data, err := json.Marshal(fees)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, transportFeesKey, data, 5*time.Minute).Err()
}

// GetCachedTransportFees retrieves the cached transport fee config
func GetCachedTransportFees(ctx context.Context) (booking.TransportFees, error) {
	var fees booking.TransportFees
	data, err := RedisClient.Get(ctx, transportFeesKey).Result()
	if err != nil {
		return fees, err
	}
	if err := json.Unmarshal([]byte(data), &fees); err != nil {
		return fees, err
	}
	return fees, nil
}

// InvalidateTransportFees drops the cached fee config after a settings update
func InvalidateTransportFees(ctx context.Context) error {
	return RedisClient.Del(ctx, transportFeesKey).Err()
}

// AcquireSubmitLock claims the cross-process submission lock for a draft.
// Returns false when another submission for the same draft is in flight.
func AcquireSubmitLock(ctx context.Context, draftKey string) (bool, error) {
	key := fmt.Sprintf("rental:submit:%s", draftKey)
	return RedisClient.SetNX(ctx, key, "1", 30*time.Second).Result()
}

// ReleaseSubmitLock releases the submission lock once the attempt resolves
func ReleaseSubmitLock(ctx context.Context, draftKey string) error {
	key := fmt.Sprintf("rental:submit:%s", draftKey)
	return RedisClient.Del(ctx, key).Err()
}

// PublishRentalUpdate publishes a rental status change to Redis pub/sub
func PublishRentalUpdate(ctx context.Context, rentalID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"rentalId":  rentalID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "rental:updates", jsonData).Err()
}
