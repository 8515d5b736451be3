// Package ratelimit 基于Redis的请求限流器。
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter 基于Redis的固定窗口限流器
type Limiter struct {
	client    *redis.Client
	limit     int
	keyPrefix string
	window    time.Duration
}

// NewLimiter 创建限流器
func NewLimiter(client *redis.Client, limit int, keyPrefix string, window time.Duration) *Limiter {
	return &Limiter{
		client:    client,
		limit:     limit,
		keyPrefix: keyPrefix,
		window:    window,
	}
}

// Allow 判断key在当前窗口内是否还有配额
// 使用Lua脚本保证计数和过期设置的原子性，并发请求不会多算或漏算
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.keyPrefix + key

	script := redis.NewScript(
		`local current = redis.call('INCR', KEYS[1])
		if current == 1 then
			redis.call('PEXPIRE', KEYS[1], tonumber(ARGV[1]))
		end
		return current`,
	)

	result, err := script.Run(ctx, l.client, []string{redisKey}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	count := result.(int64)
	return count <= int64(l.limit), nil
}

// Reset 清除key的计数
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.keyPrefix+key).Err()
}
