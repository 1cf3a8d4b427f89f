package dict

import "fmt"

// Trim shrinks the backing array to the live entry count plus a padding of
// free slots. The padding is at least 4 and is rounded up to a multiple of
// 4, as is the resulting capacity (which never drops below MinCapacity).
// Trim is a capacity-management hint, not required for correctness: it is a
// no-op when the current free slack is already at or below the requested
// padding, or when the rounded target would not actually shrink the array.
//
// The smaller columns are allocated and populated before being swapped in,
// so a failed allocation leaves the dictionary untouched. Entries are copied
// in their existing order, so the result is marked sorted.
func (d *Dictionary) Trim(padding int) error {
	if d.closed() {
		return fmt.Errorf("trim: %w", ErrNilDictionary)
	}
	if padding < capacityAlign {
		padding = capacityAlign
	} else if rem := padding % capacityAlign; rem != 0 {
		padding += capacityAlign - rem
	}

	if !d.sorted {
		d.resort()
	}
	if slack := d.lower + 1; slack <= padding {
		d.diag.Infof("dictionary %q: trim skipped, slack %d already within padding %d",
			d.label, slack, padding)
		return nil
	}
	size := roundCapacity(d.count + padding)
	if size >= len(d.hashes) {
		return nil
	}

	keys := make([]string, size)
	vals := make([][]byte, size)
	hashes := make([]uint16, size)
	sections := make([]uint16, size)

	to := size - d.count
	copy(keys[to:], d.keys[d.lower+1:])
	copy(vals[to:], d.vals[d.lower+1:])
	copy(hashes[to:], d.hashes[d.lower+1:])
	copy(sections[to:], d.sections[d.lower+1:])

	d.diag.Infof("dictionary %q: trimmed from %d to %d slots", d.label, len(d.hashes), size)

	d.keys = keys
	d.vals = vals
	d.hashes = hashes
	d.sections = sections
	d.lower = to - 1
	d.sorted = true
	return nil
}
