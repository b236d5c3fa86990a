package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	bucket := NewTokenBucket(5, 1)

	for i := 0; i < 5; i++ {
		if !bucket.Allow() {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if bucket.Allow() {
		t.Error("6th request should be denied")
	}

	time.Sleep(1100 * time.Millisecond)

	if !bucket.Allow() {
		t.Error("Request after refill should be allowed")
	}
}

func TestTokenBucket_AllowN(t *testing.T) {
	bucket := NewTokenBucket(10, 2)

	if !bucket.AllowN(10) {
		t.Error("AllowN(10) should be allowed")
	}

	if bucket.AllowN(1) {
		t.Error("AllowN(1) should be denied after consuming all tokens")
	}

	time.Sleep(1100 * time.Millisecond)

	if !bucket.AllowN(2) {
		t.Error("AllowN(2) should be allowed after refill")
	}
}

func TestRateLimiter_KeysAreIsolated(t *testing.T) {
	limiter := NewRateLimiter(3, 1)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("player1") {
			t.Errorf("Request %d for player1 should be allowed", i+1)
		}
	}

	if limiter.Allow("player1") {
		t.Error("4th request for player1 should be denied")
	}

	if !limiter.Allow("player2") {
		t.Error("First request for player2 should be allowed")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	limiter := NewRateLimiter(5, 2)

	for i := 0; i < 5; i++ {
		limiter.Allow("test")
	}

	if limiter.Allow("test") {
		t.Error("Request should be denied after consuming all tokens")
	}

	time.Sleep(1100 * time.Millisecond)

	if !limiter.Allow("test") || !limiter.Allow("test") {
		t.Error("Should allow 2 requests after refill")
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	limiter := NewRateLimiter(2, 1)

	limiter.Allow("test")
	limiter.Allow("test")

	if limiter.Allow("test") {
		t.Error("Request should be denied")
	}

	limiter.Reset("test")

	if !limiter.Allow("test") {
		t.Error("Request should be allowed after reset")
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewRateLimiter(100, 10)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				limiter.Allow("concurrent")
			}
		}()
	}
	wg.Wait()

	if got := limiter.ActiveBuckets(); got != 1 {
		t.Errorf("Expected 1 active bucket, got %d", got)
	}
}

func BenchmarkTokenBucket_Allow(b *testing.B) {
	bucket := NewTokenBucket(1000000, 100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bucket.Allow()
	}
}

func BenchmarkRateLimiter_Allow(b *testing.B) {
	limiter := NewRateLimiter(1000000, 100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow("test")
	}
}
