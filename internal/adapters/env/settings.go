// Package env reads engine settings from environment variables. Keys like
// "discover.seed_limit" map to DISCOVER_SEED_LIMIT.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/remo-imparato/MatchMonkey-sub000/internal/core/ports"
)

// Settings implements the settings port over the process environment,
// optionally under a prefix.
type Settings struct {
	prefix string
}

var _ ports.Settings = (*Settings)(nil)

// NewSettings constructs env-backed settings. A non-empty prefix is
// prepended to every variable name, e.g. prefix "MM" gives MM_DISCOVER_SEED_LIMIT.
func NewSettings(prefix string) *Settings {
	return &Settings{prefix: prefix}
}

func (s *Settings) lookup(key string) (string, bool) {
	name := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if s.prefix != "" {
		name = s.prefix + "_" + name
	}
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (s *Settings) String(key, def string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return def
}

func (s *Settings) Int(key string, def int) int {
	if v, ok := s.lookup(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func (s *Settings) Bool(key string, def bool) bool {
	if v, ok := s.lookup(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

func (s *Settings) Float(key string, def float64) float64 {
	if v, ok := s.lookup(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (s *Settings) Strings(key string, def []string) []string {
	v, ok := s.lookup(key)
	if !ok {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
