package dict

// search binary-searches the live region for a hash code. The caller must
// ensure the sort invariant holds (see find). It returns the index of a live
// slot with a matching hash and true, or the index at which an entry with
// this hash would be inserted to preserve ascending order and false. The
// insertion index ranges from lower+1 (before every live entry) to the
// capacity (after every live entry).
//
// A matching hash is only a candidate: distinct keys may share a code, so
// lookup and delete paths must still compare the key text.
func (d *Dictionary) search(h uint16) (int, bool) {
	lo, hi := d.lower+1, len(d.hashes)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case d.hashes[mid] == h:
			return mid, true
		case d.hashes[mid] < h:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return lo, false
}

// find resorts the columns if a bulk operation left them stale, then
// performs the binary search. Lookups are therefore not purely read-only.
func (d *Dictionary) find(h uint16) (int, bool) {
	if !d.sorted {
		d.resort()
	}
	return d.search(h)
}

// resort re-establishes the sort invariant after bulk structural changes.
// The hash column is quicksorted with the key and value columns permuted
// identically, which floats the zeroed free slots to the low end, then the
// columns are rescanned for the first live hash to re-derive lower.
func (d *Dictionary) resort() {
	d.quicksort(0, len(d.hashes)-1)

	d.lower = len(d.hashes) - 1
	for i, h := range d.hashes {
		if h != 0 {
			d.lower = i - 1
			break
		}
	}
	d.sorted = true
	d.diag.Infof("dictionary %q: resorted %d entries", d.label, d.count)
}

// quicksort orders [first, last] of the hash column ascending, applying the
// identical permutation to the key and value columns.
func (d *Dictionary) quicksort(first, last int) {
	if first >= last {
		return
	}
	pivot := d.hashes[first]
	i, j := first, last
	for i < j {
		for d.hashes[i] <= pivot && i < last {
			i++
		}
		for d.hashes[j] > pivot {
			j--
		}
		if i < j {
			d.swap(i, j)
		}
	}
	d.swap(first, j)
	d.quicksort(first, j-1)
	d.quicksort(j+1, last)
}

// swap exchanges slots i and j across all three live columns in lock-step.
func (d *Dictionary) swap(i, j int) {
	d.hashes[i], d.hashes[j] = d.hashes[j], d.hashes[i]
	d.keys[i], d.keys[j] = d.keys[j], d.keys[i]
	d.vals[i], d.vals[j] = d.vals[j], d.vals[i]
}
