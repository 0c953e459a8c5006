package utils

import "testing"

func TestPoolDefaults(t *testing.T) {
	p := PostgresPoolConfig{}.withDefaults()
	if p.MaxOpenConns <= 0 || p.PingTimeout <= 0 {
		t.Fatalf("expected defaults applied, got %+v", p)
	}
}
