package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"
)

// mockClock is a controllable clock for testing.
type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMockClock() *mockClock {
	return &mockClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckReport_Cooldown(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		ReportCooldown:     10 * time.Second,
		ReportMaxPerHour:   5,
		ReportMaxIPPerHour: 20,
		Clock:              clock,
	})
	defer limiter.Close()

	const player = int64(7)
	ip := "192.168.1.1"

	result := limiter.CheckReport(player, ip)
	if !result.Allowed {
		t.Fatalf("First report should be allowed, got blocked: %s", result.Reason)
	}
	limiter.RecordReport(player, ip)

	clock.Advance(4 * time.Second)
	result = limiter.CheckReport(player, ip)
	if result.Allowed {
		t.Fatal("Report within cooldown should be blocked")
	}
	if result.Reason != "cooldown" {
		t.Errorf("Expected reason 'cooldown', got '%s'", result.Reason)
	}
	if result.RetryAfter != 6*time.Second {
		t.Errorf("RetryAfter = %v, want 6s", result.RetryAfter)
	}

	clock.Advance(6 * time.Second)
	if result := limiter.CheckReport(player, ip); !result.Allowed {
		t.Errorf("Report after cooldown should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckReport_HourlyLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		ReportCooldown:     time.Second,
		ReportMaxPerHour:   3,
		ReportMaxIPPerHour: 100,
		Clock:              clock,
	})
	defer limiter.Close()

	const player = int64(9)
	ip := "192.168.1.1"

	for i := 0; i < 3; i++ {
		if result := limiter.CheckReport(player, ip); !result.Allowed {
			t.Fatalf("Report %d should be allowed, got blocked: %s", i+1, result.Reason)
		}
		limiter.RecordReport(player, ip)
		clock.Advance(2 * time.Second)
	}

	result := limiter.CheckReport(player, ip)
	if result.Allowed {
		t.Fatal("Fourth report should hit the hourly limit")
	}
	if result.Reason != "hourly_limit" {
		t.Errorf("Expected reason 'hourly_limit', got '%s'", result.Reason)
	}

	clock.Advance(time.Hour)
	if result := limiter.CheckReport(player, ip); !result.Allowed {
		t.Errorf("Report after window should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckReport_IPLimit(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		ReportCooldown:     time.Second,
		ReportMaxPerHour:   10,
		ReportMaxIPPerHour: 3,
		Clock:              clock,
	})
	defer limiter.Close()

	ip := "203.0.113.9"
	for player := int64(1); player <= 3; player++ {
		if result := limiter.CheckReport(player, ip); !result.Allowed {
			t.Fatalf("Report by player %d should be allowed, got blocked: %s", player, result.Reason)
		}
		limiter.RecordReport(player, ip)
	}

	result := limiter.CheckReport(4, ip)
	if result.Allowed {
		t.Fatal("Fourth player on the same IP should be blocked")
	}
	if result.Reason != "ip_hourly_limit" {
		t.Errorf("Expected reason 'ip_hourly_limit', got '%s'", result.Reason)
	}

	if result := limiter.CheckReport(4, "203.0.113.10"); !result.Allowed {
		t.Errorf("Other IP should be allowed, got blocked: %s", result.Reason)
	}
}

func TestCheckAndRecord_SeparateOps(t *testing.T) {
	clock := newMockClock()
	limiter := New(&Config{
		ReportCooldown:     time.Minute,
		ReportMaxPerHour:   5,
		ReportMaxIPPerHour: 20,
		Clock:              clock,
	})
	defer limiter.Close()

	// Checking alone never consumes quota.
	for i := 0; i < 10; i++ {
		if result := limiter.CheckReport(3, "10.0.0.1"); !result.Allowed {
			t.Fatalf("Check %d should be allowed without a record, got blocked: %s", i+1, result.Reason)
		}
	}
	limiter.RecordReport(3, "10.0.0.1")
	if result := limiter.CheckReport(3, "10.0.0.1"); result.Allowed {
		t.Error("Check after record should be in cooldown")
	}
}

func TestGetClientIP_TrustProxy(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		trustProxy bool
		expected   string
	}{
		{
			name:       "TrustProxy=true, XFF rightmost public IP",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.50",
		},
		{
			name:       "TrustProxy=true, XFF all private",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "10.0.0.1",
		},
		{
			name:       "TrustProxy=true, X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.51"},
			remoteAddr: "10.0.0.1:12345",
			trustProxy: true,
			expected:   "203.0.113.51",
		},
		{
			name:       "TrustProxy=false, ignores XFF",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.50"},
			remoteAddr: "192.168.1.100:54321",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.100",
			trustProxy: false,
			expected:   "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			got := GetClientIP(r, tt.trustProxy)
			if got != tt.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	limiter := New(&Config{})
	defer limiter.Close()

	defaults := DefaultConfig()
	if limiter.config.ReportCooldown != defaults.ReportCooldown {
		t.Errorf("ReportCooldown = %v, want %v", limiter.config.ReportCooldown, defaults.ReportCooldown)
	}
	if limiter.config.ReportMaxPerHour != defaults.ReportMaxPerHour {
		t.Errorf("ReportMaxPerHour = %d, want %d", limiter.config.ReportMaxPerHour, defaults.ReportMaxPerHour)
	}
	if limiter.config.ReportMaxIPPerHour != defaults.ReportMaxIPPerHour {
		t.Errorf("ReportMaxIPPerHour = %d, want %d", limiter.config.ReportMaxIPPerHour, defaults.ReportMaxIPPerHour)
	}

	nilLimiter := New(nil)
	defer nilLimiter.Close()
	if !nilLimiter.CheckReport(1, "10.0.0.1").Allowed {
		t.Error("Fresh limiter should allow the first report")
	}
}

func TestConcurrentAccess(t *testing.T) {
	limiter := New(&Config{
		ReportCooldown:     time.Millisecond,
		ReportMaxPerHour:   1000,
		ReportMaxIPPerHour: 1000,
	})
	defer limiter.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(player int64) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				limiter.CheckReport(player, "10.0.0.1")
				limiter.RecordReport(player, "10.0.0.1")
			}
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.0.1", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"::ffff:192.168.1.1", true},
		{"203.0.113.1", false},
		{"8.8.8.8", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := isPrivateIP(tt.ip); got != tt.private {
			t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.private)
		}
	}
}
