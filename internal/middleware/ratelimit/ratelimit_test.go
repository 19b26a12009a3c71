package ratelimit

import "testing"

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 3})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request over the limit should be rejected")
	}
}

func TestAllowTracksClientsSeparately(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 1})
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Fatal("first request from a should be allowed")
	}
	if !rl.Allow("b") {
		t.Error("b has its own window and should be allowed")
	}
	if rl.ActiveClients() != 2 {
		t.Errorf("ActiveClients = %d, want 2", rl.ActiveClients())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewLimiter(DefaultConfig())
	rl.Stop()
	rl.Stop()
}
