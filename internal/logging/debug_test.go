package logging

import (
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("JOURNAL_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when JOURNAL_DEBUG is empty")
	}

	t.Setenv("JOURNAL_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when JOURNAL_DEBUG is set")
	}
}
