package dict

// Hash computes the 16-bit hash code for a key using the Jenkins
// one-at-a-time mixing function. The computation is performed in 16-bit
// arithmetic, so every intermediate step wraps; the result is deterministic
// and stable across process runs, which keeps the sorted order and binary
// search reproducible.
//
// With a 65536-value hash space, distinct keys colliding becomes likely once
// the live entry count approaches a few hundred. The dictionary stores the
// key text alongside the hash so collisions are detected, but Set rejects
// them rather than resolving them. See ErrCollision.
func Hash(key string) uint16 {
	var h uint16
	for i := 0; i < len(key); i++ {
		h += uint16(key[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
