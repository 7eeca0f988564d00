package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via JOURNAL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("JOURNAL_DEBUG") != ""
}
