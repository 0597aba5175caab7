package testutil

import (
	"os"
	"testing"
)

const envUseCI = "SHA2_CI"

// SkipCI skips long-running tests unless SHA2_CI is set.
func SkipCI(t *testing.T) {
	if os.Getenv(envUseCI) == "" {
		t.Skip("Skip long test, set " + envUseCI + " to run")
	}
}
