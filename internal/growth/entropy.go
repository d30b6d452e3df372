package growth

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// entityEntropy derives a deterministic pseudo-random adjustment in
// [-0.1, +0.1] from the artist's lowercased name. Two artists with
// identical coarse inputs (same genre, same tier, same metrics) still
// get differentiated predictions, and the same artist always gets the
// same adjustment across runs and processes.
//
// Deliberately a stable hash, not a seeded RNG: reproducibility is the
// contract.
func entityEntropy(name string) float64 {
	key := strings.ToLower(strings.TrimSpace(name))
	sum := sha256.Sum256([]byte(key))
	n := binary.BigEndian.Uint64(sum[:8])
	// Map to [-0.1, +0.1] with ~1e-5 granularity.
	return (float64(n%20001) - 10000) / 100000
}
