package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotReady is returned by every helper before InitRedis has run. The
// cache is never authoritative, so callers treat it like a miss.
var ErrNotReady = errors.New("redis client not initialized")

func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", ErrNotReady
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 reads a numeric value; a missing key is an error so callers
// can distinguish "cached zero" from "not cached".
func GetInt64(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, ErrNotReady
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Del(ctx, key).Err()
}

func SAdd(ctx context.Context, key string, members ...interface{}) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.SAdd(ctx, key, members...).Err()
}

func GetSet(ctx context.Context, key string) ([]string, error) {
	if Rdb == nil {
		return nil, ErrNotReady
	}
	return Rdb.SMembers(ctx, key).Result()
}

func Rename(ctx context.Context, oldKey string, newKey string) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Rename(ctx, oldKey, newKey).Err()
}

// TryLock takes a best-effort SETNX lock, retrying with a short backoff.
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	if Rdb == nil {
		return false, ErrNotReady
	}
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock releases a lock only when the holder token still matches.
func UnLock(ctx context.Context, key string, value interface{}) {
	if Rdb == nil {
		return
	}
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}
