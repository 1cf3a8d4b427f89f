package dict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStable(t *testing.T) {
	keys := []string{"uuid-1234", "LABEL=root", "/dev/sdb1", "a", "swap"}
	for _, k := range keys {
		require.Equal(t, Hash(k), Hash(k), "hash of %q must be reproducible", k)
	}
}

func TestHashEmptyKeyIsZero(t *testing.T) {
	// The free-slot marker. Keys hashing to 0 are rejected by Set and Load.
	require.EqualValues(t, 0, Hash(""))
}

func TestHashSpread(t *testing.T) {
	// Not a distribution proof, just a sanity check that the mixing steps
	// are not collapsing everything onto a few codes.
	seen := make(map[uint16]bool)
	for i := 0; i < 64; i++ {
		seen[Hash(fmt.Sprintf("uuid-%04d", i))] = true
	}
	require.Greater(t, len(seen), 60)
}

// findCollision scans generated keys until two distinct ones share a hash
// code. With a 16-bit hash space this takes a few hundred probes at most.
func findCollision(t *testing.T) (string, string) {
	t.Helper()
	seen := make(map[uint16]string)
	for i := 0; i < 1<<20; i++ {
		k := fmt.Sprintf("key-%d", i)
		h := Hash(k)
		if h == 0 {
			continue
		}
		if prev, ok := seen[h]; ok {
			return prev, k
		}
		seen[h] = k
	}
	t.Fatal("no hash collision found")
	return "", ""
}

// distinctKeys returns n keys whose hash codes are pairwise distinct and
// nonzero, so tests exercising insertion order are not tripped up by the
// collision policy.
func distinctKeys(t *testing.T, n int) []string {
	t.Helper()
	seen := make(map[uint16]bool)
	keys := make([]string, 0, n)
	for i := 0; len(keys) < n; i++ {
		k := fmt.Sprintf("uuid-%04d", i)
		h := Hash(k)
		if h == 0 || seen[h] {
			continue
		}
		seen[h] = true
		keys = append(keys, k)
	}
	return keys
}
