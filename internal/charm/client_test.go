// ABOUTME: Unit tests for the Charm key/value adapter.
// ABOUTME: Tests key namespacing without touching the network.
package charm

import (
	"strings"
	"testing"

	"github.com/harperreed/pullups/internal/storage"
)

var _ storage.KV = (*Client)(nil)

func TestNamespacedKey(t *testing.T) {
	key := string(namespaced("pullup_today_tally"))

	if !strings.HasPrefix(key, "pullups:") {
		t.Errorf("Expected key to start with 'pullups:', got: %s", key)
	}
	if key != "pullups:pullup_today_tally" {
		t.Errorf("namespaced() = %q", key)
	}
}
