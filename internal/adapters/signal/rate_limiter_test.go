package signal

import (
	"testing"
	"time"
)

func TestJoinRateLimiter_BlocksBurst(t *testing.T) {
	rl := NewJoinRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("a") {
			t.Fatalf("attempt %d blocked, want allowed", i)
		}
	}
	if rl.Allow("a") {
		t.Fatal("burst above limit must be blocked")
	}
	// Other sessions are unaffected.
	if !rl.Allow("b") {
		t.Fatal("unrelated session blocked")
	}
}

func TestJoinRateLimiter_WindowExpires(t *testing.T) {
	rl := NewJoinRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("a") {
		t.Fatal("first attempt blocked")
	}
	if rl.Allow("a") {
		t.Fatal("second attempt inside window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("a") {
		t.Fatal("attempt after window expiry blocked")
	}
}

func TestJoinRateLimiter_ForgetResets(t *testing.T) {
	rl := NewJoinRateLimiter(1, time.Minute)

	rl.Allow("a")
	rl.Forget("a")
	if !rl.Allow("a") {
		t.Fatal("forgotten session still limited")
	}
}
