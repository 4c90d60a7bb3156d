package util

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "nova-2", "whisper-1"); got != "nova-2" {
		t.Errorf("Coalesce strings = %q, want nova-2", got)
	}
	if got := Coalesce(0, 3, 5); got != 3 {
		t.Errorf("Coalesce ints = %d, want 3", got)
	}
	if got := Coalesce[string](); got != "" {
		t.Errorf("Coalesce() = %q, want empty", got)
	}
}
