package logger

import (
	"testing"
	"time"
)

func TestBuildAndCompactRID(t *testing.T) {
	rid := BuildRID(123456, -100200300, 42)
	if rid != "123456:-100200300:42" {
		t.Fatalf("BuildRID = %q", rid)
	}
	compact := CompactRID("123456:100:42")
	if compact == "" || compact == "123456:100:42" {
		t.Errorf("CompactRID did not compact: %q", compact)
	}
	// malformed input passes through unchanged
	if got := CompactRID("abc"); got != "abc" {
		t.Errorf("CompactRID(abc) = %q", got)
	}
}

func TestSanitize(t *testing.T) {
	if got := Sanitize("a\x00b\tc\nd"); got != "ab\tc\nd" {
		t.Errorf("Sanitize = %q", got)
	}
	if got := SanitizeLimit("привет мир", 6); got != "привет" {
		t.Errorf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("x", 0); got != "" {
		t.Errorf("SanitizeLimit with zero max = %q", got)
	}
}

func TestRoundMS(t *testing.T) {
	if got := RoundMS(1499 * time.Microsecond); got != time.Millisecond {
		t.Errorf("RoundMS = %v", got)
	}
	if got := RoundMS(-time.Second); got != 0 {
		t.Errorf("RoundMS negative = %v", got)
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		in       string
		num, den int
	}{
		{"off", 0, 0},
		{"all", 1, 1},
		{"50", 1, 50},
		{"2/10", 2, 10},
		{"garbage", 1, 50},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.in)
		if num != tc.num || den != tc.den {
			t.Errorf("parseRatioSpec(%q) = %d/%d, want %d/%d", tc.in, num, den, tc.num, tc.den)
		}
	}
}

func TestRatioSamplerAdmitsRatio(t *testing.T) {
	s := newRatioSampler(1, 10)
	admitted := 0
	for i := 0; i < 100; i++ {
		if s.Allow() {
			admitted++
		}
	}
	if admitted != 10 {
		t.Errorf("admitted %d of 100, want 10", admitted)
	}

	s.Set(0, 0)
	if s.Allow() {
		t.Error("disabled sampler admitted an event")
	}
}
