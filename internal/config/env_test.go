// SPDX-License-Identifier: MIT

package config

import (
	"testing"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		envSet       bool
		want         string
	}{
		{
			name:         "environment variable set",
			key:          "TEST_STRING",
			defaultValue: "default",
			envValue:     "from-env",
			envSet:       true,
			want:         "from-env",
		},
		{
			name:         "environment variable not set",
			key:          "TEST_STRING_UNSET",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "environment variable empty string",
			key:          "TEST_STRING_EMPTY",
			defaultValue: "default",
			envValue:     "",
			envSet:       true,
			want:         "default",
		},
		{
			name:         "sensitive variable (password)",
			key:          "TEST_PASSWORD",
			defaultValue: "default",
			envValue:     "secret123",
			envSet:       true,
			want:         "secret123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv(tt.key, tt.envValue)
			}
			if got := ParseString(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("ParseString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     int
	}{
		{name: "valid", envValue: "120", envSet: true, want: 120},
		{name: "invalid falls back", envValue: "many", envSet: true, want: 60},
		{name: "empty falls back", envValue: "", envSet: true, want: 60},
		{name: "unset", want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envSet {
				t.Setenv("TEST_INT", tt.envValue)
			}
			if got := ParseInt("TEST_INT", 60); got != tt.want {
				t.Errorf("ParseInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		envValue string
		def      bool
		want     bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.envValue, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			if got := ParseBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.envValue, got, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	if got := ParseFloat("TEST_FLOAT", 1); got != 0.25 {
		t.Errorf("ParseFloat() = %v, want 0.25", got)
	}

	t.Setenv("TEST_FLOAT", "abc")
	if got := ParseFloat("TEST_FLOAT", 1); got != 1 {
		t.Errorf("ParseFloat() = %v, want default 1", got)
	}
}
