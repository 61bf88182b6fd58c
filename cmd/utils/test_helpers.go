package utils

import (
	"os"
	"strings"
	"testing"
)

// ClearTestEnvironment blanks every environment variable for the duration of the test, so NETKI_* values set on the
// host don't leak into the CLI options.
func ClearTestEnvironment(t *testing.T) {
	for _, env := range os.Environ() {
		key, _, _ := strings.Cut(env, "=")
		t.Setenv(key, "")
	}
}
