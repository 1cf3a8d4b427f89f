// Package dict implements an in-memory string dictionary backed by a flat,
// hash-sorted array rather than a bucketed hash map.
//
// The dictionary maps unique string keys to string values. Keys, values, and
// 16-bit hash codes are held in three parallel columns packed against the top
// of a capacity-aligned backing array, ascending by hash code. Lookups hash
// the key and binary-search the live region; inserts and deletes open or
// close a slot by shifting the live region, keeping it contiguous and sorted.
// The trade is O(n) worst-case mutation for O(log n) lookup, which suits
// read-heavy key sets of tens to low thousands of entries.
//
// Key Components:
//
// Hashing:
//   - Jenkins one-at-a-time hash truncated to 16 bits (Hash)
//   - Stable across process runs; used for ordering and as an equality
//     pre-check before key text comparison
//
// Sorted-array maintenance:
//   - Binary search over the live region with insertion-point reporting
//   - Insert-with-shift and delete-with-shift keeping entries contiguous
//   - Lazy resort: bulk loads mark the sort stale and the next ordered
//     operation quicksorts the columns back into hash order
//
// Capacity management:
//   - Doubling growth on overflow, copying live entries into the high half
//   - Explicit Trim that shrinks the backing array via copy-then-swap
//
// Diagnostics:
//   - Dump, RawDump, Meta, and Show write human-readable listings to a
//     caller-supplied writer; they are conveniences, not part of the
//     storage contract
//   - A per-instance Diagnostics collaborator receives progress and warning
//     messages; there is no global verbosity state
//
// A Dictionary is not safe for concurrent use. Even read-only operations may
// trigger an internal resort, so exactly one goroutine must own an instance
// at a time.
package dict
