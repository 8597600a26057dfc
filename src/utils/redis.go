package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	DB "PollSensei-Backend/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ErrOTPMismatch รหัส OTP ไม่ตรงหรือหมดอายุแล้ว
var ErrOTPMismatch = errors.New("invalid or expired otp")

// ensureClient returns the shared Redis client managed by the database package.
// A nil client means redis is not configured; callers degrade instead of failing.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// BlacklistToken เพิ่ม access token เข้า blacklist (ใช้ตอน logout)
func BlacklistToken(token string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		log.Println("⚠️ redis client not initialized, skip blacklist")
		return nil
	}
	if expiresIn <= 0 {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	if err := client.Set(Ctx, key, "1", expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsTokenBlacklisted ตรวจสอบว่า token อยู่ใน blacklist หรือไม่
func IsTokenBlacklisted(token string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("blacklist:%s", token)
	_, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}

// StoreOTP เก็บ OTP ของอีเมลพร้อม expiration
func StoreOTP(email, otp string, ttl time.Duration) error {
	client := ensureClient()
	if client == nil {
		return errors.New("redis is required for otp verification")
	}
	return client.Set(Ctx, "otp:"+email, otp, ttl).Err()
}

// ConsumeOTP ตรวจ OTP แล้วลบทิ้ง (ใช้ได้ครั้งเดียว)
func ConsumeOTP(email, otp string) error {
	client := ensureClient()
	if client == nil {
		return errors.New("redis is required for otp verification")
	}

	key := "otp:" + email
	stored, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrOTPMismatch
		}
		return fmt.Errorf("failed to get otp: %w", err)
	}
	if stored != otp {
		return ErrOTPMismatch
	}
	return client.Del(Ctx, key).Err()
}
