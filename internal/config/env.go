package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Helpers shared by the loaders in this package.  The env* variants fall
// back to a default when the variable is unset or unparsable; the require*
// variants report an error instead.

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}

// requireStr returns the value of a required environment variable.
func requireStr(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return v, nil
}

// optionalInt parses key as an integer when it is set.  An unset variable
// yields d.
func optionalInt(key string, d int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return d, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n, nil
}

// optionalDur parses key as a Go duration when it is set.
func optionalDur(key string, d time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return d, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, s)
	}
	return dur, nil
}
