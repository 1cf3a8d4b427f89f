package dict

import (
	"fmt"
	"io"
)

// Dump writes the live key/value pairs to w, one [key]=[value] line per
// entry in slot order. Entries without a value print UNDEF. Dump is a
// diagnostic convenience owned by the caller, not part of the storage
// contract.
func (d *Dictionary) Dump(w io.Writer) {
	if d.closed() || w == nil {
		return
	}
	if d.count < 1 {
		fmt.Fprintf(w, "%s: empty dictionary\n", d.label)
		return
	}
	for i := 0; i < len(d.hashes); i++ {
		if d.keys[i] == "" {
			continue
		}
		val := "UNDEF"
		if d.vals[i] != nil {
			val = string(d.vals[i])
		}
		fmt.Fprintf(w, "%.4d)[%20s]\t[%s]\n", i, d.keys[i], val)
	}
}

// RawDump writes the dictionary metadata followed by every live slot with
// its index and hash code. Runs of unassigned slots are summarized rather
// than listed.
func (d *Dictionary) RawDump(w io.Writer) {
	if d.closed() || w == nil {
		return
	}
	fmt.Fprintf(w, "\nlabel: %s\n", d.label)
	fmt.Fprintf(w, "size  = %d\n", len(d.hashes))
	fmt.Fprintf(w, "n     = %d\n", d.count)
	fmt.Fprintf(w, "lower = %d\n", d.lower)

	skipFrom := -1
	for i := 0; i < len(d.hashes); i++ {
		if d.hashes[i] == 0 {
			if skipFrom < 0 {
				skipFrom = i
			}
			continue
		}
		if skipFrom >= 0 {
			fmt.Fprintf(w, "\nunassigned rows %d to %d\n\n", skipFrom, i-1)
			skipFrom = -1
		}
		val := ""
		if d.vals[i] != nil {
			val = string(d.vals[i])
		}
		fmt.Fprintf(w, "(%5d),hash=%#04x,key=[%30s]val=%s\n", i, d.hashes[i], d.keys[i], val)
	}
	if skipFrom >= 0 {
		fmt.Fprintf(w, "\nunassigned rows %d to %d\n", skipFrom, len(d.hashes)-1)
	}
}

// Meta writes summary statistics for the dictionary: label, capacity, live
// entry count, free slots, and the lower bound of the live region.
func (d *Dictionary) Meta(w io.Writer) {
	if d.closed() || w == nil {
		return
	}
	fmt.Fprintf(w, "dictionary name...: %s\n", d.label)
	fmt.Fprintf(w, "dictionary size...: %d\n", len(d.hashes))
	fmt.Fprintf(w, "dictionary used...: %d\n", d.count)
	fmt.Fprintf(w, "dictionary avail..: %d\n", len(d.hashes)-d.count)
	fmt.Fprintf(w, "dictionary lower..: %d\n", d.lower)
	fmt.Fprintf(w, "dictionary sorted.: %t\n", d.sorted)
}

// At returns the key and value stored in slot index. ok is false for free
// slots and out-of-range indexes. Entries without a value return an empty
// string.
func (d *Dictionary) At(index int) (key, value string, ok bool) {
	if d.closed() || index < 0 || index >= len(d.hashes) || d.keys[index] == "" {
		return "", "", false
	}
	return d.keys[index], string(d.vals[index]), true
}

// Show writes a single slot by index, including its hash code. Out-of-range
// indexes report an error line instead.
func (d *Dictionary) Show(w io.Writer, index int) {
	if w == nil {
		return
	}
	if d.closed() {
		fmt.Fprintln(w, "dictionary not defined")
		return
	}
	if index < 0 || index >= len(d.hashes) {
		fmt.Fprintf(w, "index %d out of range [0,%d)\n", index, len(d.hashes))
		return
	}
	val := ""
	if d.vals[index] != nil {
		val = string(d.vals[index])
	}
	fmt.Fprintf(w, "index: %4d hash=%#04x %s=%s\n", index, d.hashes[index], d.keys[index], val)
}
