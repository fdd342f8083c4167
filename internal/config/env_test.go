package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{" on ", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"off", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	cases := map[string]int{"": 7, "12": 12, " 3 ": 3, "0": 7, "-4": 7, "abc": 7}
	for raw, want := range cases {
		t.Setenv("INT_TEST", raw)
		if got := intEnvOrDefault("INT_TEST", 7); got != want {
			t.Fatalf("expected %d for %q, got %d", want, raw, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	cases := map[string]time.Duration{"": time.Second, "5s": 5 * time.Second, "0s": time.Second, "soon": time.Second}
	for raw, want := range cases {
		t.Setenv("DURATION_TEST", raw)
		if got := durationEnvOrDefault("DURATION_TEST", time.Second); got != want {
			t.Fatalf("expected %s for %q, got %s", want, raw, got)
		}
	}
}

func TestEnvOrDefaultTreatsBlankAsUnset(t *testing.T) {
	t.Setenv("STRING_TEST", "   ")
	if got := envOrDefault("STRING_TEST", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
