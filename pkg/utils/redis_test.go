package utils

import (
	"context"
	"testing"
	"time"
)

func TestMarkEventProcessed_ValidatesArgs(t *testing.T) {
	ctx := context.Background()
	if _, err := MarkEventProcessed(ctx, nil, "e", time.Minute); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestRedisDefaults(t *testing.T) {
	c := RedisConfig{}.withDefaults()
	if c.PoolSize <= 0 || c.PingTimeout <= 0 {
		t.Fatalf("expected defaults applied, got %+v", c)
	}
}
