package dict

import (
	"fmt"
	"strings"
)

// Get returns the value stored for key, or def if the key is absent, was
// stored without a value, or its hash collides with a different live key.
// Get never mutates caller-visible state, but it may resort the columns if
// a bulk load left them stale.
func (d *Dictionary) Get(key, def string) string {
	if d.closed() || d.count == 0 {
		return def
	}
	i, ok := d.find(Hash(key))
	if !ok || d.keys[i] != key || d.vals[i] == nil {
		return def
	}
	return string(d.vals[i])
}

// GetBool interprets the value stored for key as a boolean. Values starting
// with 't', 'T', 'y', 'Y', or '1' are true; 'f', 'F', 'n', 'N', or '0' are
// false. Anything else, including an absent key, yields def. An empty value
// also yields def: classifying the terminator of an empty string as true is
// a quirk this implementation deliberately does not reproduce.
func (d *Dictionary) GetBool(key string, def bool) bool {
	v := d.Get(key, "")
	if v == "" || !strings.ContainsRune("FfNnTtYy01", rune(v[0])) {
		return def
	}
	return strings.ContainsRune("TtYy1", rune(v[0]))
}

// Index returns the slot index currently holding key. The index is only
// valid until the next mutating operation.
func (d *Dictionary) Index(key string) (int, bool) {
	if d.closed() || d.count == 0 {
		return 0, false
	}
	i, ok := d.find(Hash(key))
	if !ok || d.keys[i] != key {
		return 0, false
	}
	return i, true
}

// KeyExists reports whether key is present, with or without a value.
func (d *Dictionary) KeyExists(key string) bool {
	_, ok := d.Index(key)
	return ok
}

// Set stores value under key. An existing entry for the same key is updated
// in place: when the new value fits in the previously allocated buffer the
// bytes are overwritten without reallocating, and the entry keeps its slot.
// A new key is inserted at its sorted position by shifting the live region
// down one slot, growing the backing array first if it is full.
//
// Set returns ErrNilDictionary for a nil or closed dictionary, ErrCollision
// when a different live key already holds the same hash code (the dictionary
// is left unmodified), and ErrAllocation if growth fails.
func (d *Dictionary) Set(key, value string) error {
	if d.closed() {
		return fmt.Errorf("set %q: %w", key, ErrNilDictionary)
	}
	h := Hash(key)
	if h == 0 {
		// Hash code 0 marks free slots and cannot identify a live entry.
		return fmt.Errorf("set %q: hash code 0 is reserved for free slots: %w", key, ErrCollision)
	}

	i, ok := d.find(h)
	if ok {
		if d.keys[i] != key {
			d.diag.Warnf("dictionary %q: keys %q and %q both hash to %#04x",
				d.label, d.keys[i], key, h)
			return fmt.Errorf("set %q: hash %#04x already held by %q: %w",
				key, h, d.keys[i], ErrCollision)
		}
		if old := d.vals[i]; old != nil {
			// Reuse the existing allocation when the new value fits.
			d.vals[i] = append(old[:0], value...)
		} else {
			d.vals[i] = newValue(value)
		}
		return nil
	}

	if d.count == len(d.hashes) {
		if err := d.grow(); err != nil {
			return err
		}
		// Growth shifted every live slot up by the old capacity.
		i, _ = d.search(h)
	}
	d.insertAt(i, h, key, value)
	return nil
}

// insertAt opens a slot immediately below insertion point i by shifting the
// live entries in [lower+1, i-1] down one position, then writes the new
// entry into the freed slot. The caller guarantees at least one free slot.
func (d *Dictionary) insertAt(i int, h uint16, key, value string) {
	copy(d.hashes[d.lower:i-1], d.hashes[d.lower+1:i])
	copy(d.keys[d.lower:i-1], d.keys[d.lower+1:i])
	copy(d.vals[d.lower:i-1], d.vals[d.lower+1:i])

	at := i - 1
	d.hashes[at] = h
	d.keys[at] = strings.Clone(key)
	d.vals[at] = newValue(value)
	d.lower--
	d.count++
}

// newValue copies value into an owned buffer. The buffer is non-nil even for
// an empty value; a nil buffer means the entry has no value at all.
func newValue(value string) []byte {
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf
}

// Unset removes key from the dictionary, releasing its entry and closing
// the gap so the live region stays contiguous and sorted. It returns
// ErrNotFound, without modifying state, when the key is absent.
func (d *Dictionary) Unset(key string) error {
	if d.closed() {
		return fmt.Errorf("unset %q: %w", key, ErrNilDictionary)
	}
	if d.count == 0 {
		return fmt.Errorf("unset %q: %w", key, ErrNotFound)
	}

	h := Hash(key)
	i, ok := d.find(h)
	if !ok {
		return fmt.Errorf("unset %q: %w", key, ErrNotFound)
	}
	if d.keys[i] != key {
		// The hash matched a different key. Fall back to a linear scan of
		// the live region for an exact match.
		i = -1
		for j := d.lower + 1; j < len(d.hashes); j++ {
			if d.keys[j] == key {
				i = j
				break
			}
		}
		if i < 0 {
			return fmt.Errorf("unset %q: %w", key, ErrNotFound)
		}
	}

	// Close the gap: entries in [lower+1, i-1] shift up one slot, the freed
	// boundary slot is zeroed, and the live region shrinks from below.
	copy(d.hashes[d.lower+2:i+1], d.hashes[d.lower+1:i])
	copy(d.keys[d.lower+2:i+1], d.keys[d.lower+1:i])
	copy(d.vals[d.lower+2:i+1], d.vals[d.lower+1:i])

	d.lower++
	d.hashes[d.lower] = 0
	d.keys[d.lower] = ""
	d.vals[d.lower] = nil
	d.count--
	return nil
}

// Load bulk-appends entries into the free region without per-entry shifting
// and marks the sort stale; the next ordered operation resorts once. This is
// the intended path for populating a dictionary from a parsed file or a
// device scan.
//
// Keys must be distinct, absent from the dictionary, and must not collide in
// hash with each other or with live entries; a violation is reported as
// ErrCollision and nothing is loaded.
func (d *Dictionary) Load(entries []Entry) error {
	if d.closed() {
		return fmt.Errorf("load: %w", ErrNilDictionary)
	}
	if len(entries) == 0 {
		return nil
	}

	// Validate the whole batch up front so a rejected load leaves the
	// dictionary untouched.
	seen := make(map[uint16]string, d.count+len(entries))
	for j := d.lower + 1; j < len(d.hashes); j++ {
		seen[d.hashes[j]] = d.keys[j]
	}
	hashes := make([]uint16, len(entries))
	for n, e := range entries {
		h := Hash(e.Key)
		if h == 0 {
			return fmt.Errorf("load %q: hash code 0 is reserved for free slots: %w", e.Key, ErrCollision)
		}
		if prev, dup := seen[h]; dup {
			d.diag.Warnf("dictionary %q: keys %q and %q both hash to %#04x", d.label, prev, e.Key, h)
			return fmt.Errorf("load %q: hash %#04x already held by %q: %w", e.Key, h, prev, ErrCollision)
		}
		seen[h] = e.Key
		hashes[n] = h
	}

	for d.count+len(entries) > len(d.hashes) {
		if err := d.grow(); err != nil {
			return err
		}
	}

	for n, e := range entries {
		d.hashes[d.lower] = hashes[n]
		d.keys[d.lower] = strings.Clone(e.Key)
		d.vals[d.lower] = newValue(e.Value)
		d.lower--
		d.count++
	}
	d.sorted = false
	d.diag.Infof("dictionary %q: loaded %d entries, resort pending", d.label, len(entries))
	return nil
}
