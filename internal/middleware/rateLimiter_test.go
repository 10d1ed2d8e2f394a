package middleware

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_BurstExhaustion(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0), 2)

	ip := "203.0.113.7"
	for i := 0; i < 2; i++ {
		if !limiter.GetLimiter(ip).Allow() {
			t.Fatalf("request %d inside the burst was rejected", i)
		}
	}
	if limiter.GetLimiter(ip).Allow() {
		t.Error("request over the burst was allowed")
	}
}

func TestIPRateLimiter_PerIPIsolation(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0), 1)

	if !limiter.GetLimiter("10.0.0.1").Allow() {
		t.Fatal("first ip rejected inside its burst")
	}
	if !limiter.GetLimiter("10.0.0.2").Allow() {
		t.Error("second ip was throttled by the first ip's usage")
	}
}

func TestIPRateLimiter_ReusesLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	first := limiter.GetLimiter("10.0.0.1")
	second := limiter.GetLimiter("10.0.0.1")
	if first != second {
		t.Error("same ip produced a new limiter instance")
	}
}
