package env

import "testing"

func TestSettings_KeyMapping(t *testing.T) {
	t.Setenv("MM_DISCOVER_SEED_LIMIT", "8")
	t.Setenv("MM_PLAYLIST_NAME", "Fresh Finds")
	t.Setenv("MM_RANK_ENABLED", "false")
	t.Setenv("MM_DISCOVER_BLEND_RATIO", "0.7")
	t.Setenv("MM_DISCOVER_BLACKLIST", "one, two ,,three")

	s := NewSettings("MM")

	if got := s.Int("discover.seed_limit", 5); got != 8 {
		t.Errorf("Int = %d, want 8", got)
	}
	if got := s.String("playlist.name", "Discovered"); got != "Fresh Finds" {
		t.Errorf("String = %q", got)
	}
	if got := s.Bool("rank.enabled", true); got {
		t.Error("Bool should read false")
	}
	if got := s.Float("discover.blend_ratio", 0.5); got != 0.7 {
		t.Errorf("Float = %v, want 0.7", got)
	}
	if got := s.Strings("discover.blacklist", nil); len(got) != 3 || got[1] != "two" {
		t.Errorf("Strings = %v", got)
	}
}

func TestSettings_Defaults(t *testing.T) {
	s := NewSettings("MM")

	if got := s.Int("discover.total_budget", 60); got != 60 {
		t.Errorf("missing Int = %d, want default", got)
	}
	if got := s.String("playlist.policy", "append"); got != "append" {
		t.Errorf("missing String = %q, want default", got)
	}

	t.Setenv("MM_OUTPUT_TOTAL", "not a number")
	if got := s.Int("output.total", 25); got != 25 {
		t.Errorf("malformed Int = %d, want default", got)
	}
}

func TestSettings_NoPrefix(t *testing.T) {
	t.Setenv("QUEUE_SAVE_HISTORY", "true")
	s := NewSettings("")
	if !s.Bool("queue.save_history", false) {
		t.Error("unprefixed lookup failed")
	}
}
