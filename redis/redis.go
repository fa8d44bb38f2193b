package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// BlacklistToken marks a token id as revoked until its natural expiry.
// The auth middleware rejects any request carrying a blacklisted token.
func BlacklistToken(jti string, ttl time.Duration) error {
	return Client.Set(Ctx, "blacklist:"+jti, "1", ttl).Err()
}

// IsTokenBlacklisted checks whether a token id has been revoked.
func IsTokenBlacklisted(jti string) bool {
	exists, err := Client.Exists(Ctx, "blacklist:"+jti).Result()
	return err == nil && exists > 0
}

// SetResetOTP stores a password-reset OTP for an email with a TTL.
func SetResetOTP(email, otp string, ttl time.Duration) error {
	return Client.Set(Ctx, "reset-otp:"+email, otp, ttl).Err()
}

// GetResetOTP fetches the pending password-reset OTP for an email.
func GetResetOTP(email string) (string, error) {
	return Client.Get(Ctx, "reset-otp:"+email).Result()
}

// DeleteResetOTP clears a consumed or invalidated OTP.
func DeleteResetOTP(email string) {
	Client.Del(Ctx, "reset-otp:"+email)
}
