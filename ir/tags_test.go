package ir

import (
	"math"
	"testing"
	"time"
)

func TestResolveTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", TagNull},
		{"~", TagNull},
		{"null", TagNull},
		{"yes", TagBool},
		{"Off", TagBool},
		{"TRUE", TagBool},
		{"y", TagStr},
		{"55", TagInt},
		{"-12", TagInt},
		{"0x1F", TagInt},
		{"1_000", TagInt},
		{"1.5", TagFloat},
		{".inf", TagFloat},
		{"-.INF", TagFloat},
		{"1e5", TagFloat},
		{"2001-12-14", TagTimestamp},
		{"2001-12-14t21:59:43.10-05:00", TagTimestamp},
		{"hide enchants", TagStr},
		{"%player_level%", TagStr},
		{".", TagStr},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := ResolveTag(tc.in); got != tc.want {
				t.Errorf("ResolveTag(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		bits    int
		want    int64
		wantErr bool
	}{
		{"10", 64, 10, false},
		{"-0x10", 64, -16, false},
		{"0o17", 64, 15, false},
		{"017", 64, 15, false},
		{"0b101", 64, 5, false},
		{"1_000", 64, 1000, false},
		{"128", 8, 0, true},
		{"1.5", 32, 0, true},
		{"abc", 32, 0, true},
	}
	for _, tc := range tests {
		got, err := ParseInt(tc.in, tc.bits)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseInt(%q): err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	f, err := ParseFloat(".inf", 64)
	if err != nil || !math.IsInf(f, 1) {
		t.Errorf("got %v %v", f, err)
	}
	f, err = ParseFloat("-2.5", 64)
	if err != nil || f != -2.5 {
		t.Errorf("got %v %v", f, err)
	}
	if _, err := ParseFloat("x", 64); err == nil {
		t.Errorf("expected error")
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"yes", "YES", "On", "true", "True"} {
		if b, err := ParseBool(s); err != nil || !b {
			t.Errorf("ParseBool(%q) = %v, %v", s, b, err)
		}
	}
	for _, s := range []string{"no", "OFF", "false"} {
		if b, err := ParseBool(s); err != nil || b {
			t.Errorf("ParseBool(%q) = %v, %v", s, b, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Errorf("expected error")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2002-12-14", time.Date(2002, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"2001-12-15T02:59:43.1Z", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
		{"2001-12-14 21:59:43.10 -5", time.Date(2001, 12, 15, 2, 59, 43, 100000000, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	if got := NormalizeTag("tag:yaml.org,2002:set"); got != TagSet {
		t.Errorf("got %s", got)
	}
	if got := NormalizeTag("!color"); got != "!color" {
		t.Errorf("got %s", got)
	}
}
