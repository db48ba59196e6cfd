package testutil

import (
	"os"
	"strings"
	"testing"
)

// GetEnvOrSkip returns the value of the environment variable. If not set, skip the test.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		t.Skipf("%s is not set, skipping integration test", key)
	}
	return value
}

// GetEnvsOrSkip returns the values of all keys in order. The test is skipped
// when any of them is missing, naming every missing key.
func GetEnvsOrSkip(t *testing.T, keys ...string) []string {
	t.Helper()
	values := make([]string, len(keys))
	var missing []string
	for i, key := range keys {
		values[i] = strings.TrimSpace(os.Getenv(key))
		if values[i] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		t.Skipf("%s not set, skipping integration test", strings.Join(missing, ", "))
	}
	return values
}
