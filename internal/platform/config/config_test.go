package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost/hrms",
		JWTSecret:          "secret",
		JWTTTL:             24 * time.Hour,
		Environment:        "development",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
		PaidLeaveDefault:   15,
		SickLeaveDefault:   10,
		LateCutoff:         "09:30",
		StandardHours:      9,
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.JWTSecret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}
}

func TestValidateRejectsBadCutoff(t *testing.T) {
	cfg := validConfig()
	cfg.LateCutoff = "930"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed cutoff")
	}
}

func TestParseCutoff(t *testing.T) {
	hour, minute, err := ParseCutoff("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hour != 9 || minute != 30 {
		t.Fatalf("expected 9:30, got %d:%d", hour, minute)
	}

	for _, bad := range []string{"", "9", "24:00", "09:60", "ab:cd"} {
		if _, _, err := ParseCutoff(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
