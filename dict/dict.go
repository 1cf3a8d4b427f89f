package dict

import (
	"fmt"
	"math"
)

const (
	// MinCapacity is the smallest backing array the dictionary allocates.
	// Capacities are always rounded up to a multiple of capacityAlign.
	MinCapacity   = 64
	capacityAlign = 4

	// maxCapacity bounds growth so capacity arithmetic cannot overflow.
	maxCapacity = math.MaxInt32 / 2
)

// Entry is a key/value pair for bulk loading. See Dictionary.Load.
type Entry struct {
	Key   string
	Value string
}

// Dictionary is an associative container mapping unique string keys to
// string values, backed by parallel key/value/hash columns packed against
// the top of the backing array and kept sorted ascending by hash code.
//
// The zero value is not usable; create instances with New. A Dictionary is
// NOT goroutine-safe: lookups may trigger an internal resort, so all
// operations require external mutual exclusion.
type Dictionary struct {
	// label is a display name recorded at creation. It identifies the
	// dictionary in diagnostics and is never consulted by lookups.
	label string
	// count is the number of live entries.
	count int
	// lower is the index of the highest unused slot. Live entries occupy
	// [lower+1, cap-1]. lower == cap-1 means empty, lower == -1 means full.
	lower int
	// sorted reports whether the live region is in ascending hash order.
	// Bulk loads clear it; the next ordered operation resorts first.
	sorted bool

	keys   []string
	vals   [][]byte // nil slice = present key with no allocated value
	hashes []uint16

	// sections is reserved extension metadata: slot 0 holds a count and the
	// remaining slots hold section hash values. The column is grown, copied,
	// and trimmed alongside the others but never consulted by the core.
	sections []uint16

	diag Diagnostics
}

// Diagnostics receives progress and warning messages from a dictionary
// instance. Implementations are provided by the caller via WithDiagnostics;
// the default discards everything. There is deliberately no package-level
// verbosity flag.
type Diagnostics interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Infof(string, ...any)  {}
func (nopDiagnostics) Warnf(string, ...any)  {}
func (nopDiagnostics) Errorf(string, ...any) {}

// Option configures a Dictionary during New.
type Option func(*Dictionary)

// WithDiagnostics attaches a diagnostics collaborator to the dictionary.
func WithDiagnostics(diag Diagnostics) Option {
	return func(d *Dictionary) {
		if diag != nil {
			d.diag = diag
		}
	}
}

// roundCapacity rounds n up to the capacity alignment and enforces the
// minimum allocation.
func roundCapacity(n int) int {
	if n < MinCapacity {
		n = MinCapacity
	}
	if rem := n % capacityAlign; rem != 0 {
		n += capacityAlign - rem
	}
	return n
}

// New creates a dictionary with room for roughly sizeHint entries. A hint of
// zero (or any value below MinCapacity) allocates the minimum backing array.
// The label is recorded for diagnostics only.
func New(sizeHint int, label string, opts ...Option) (*Dictionary, error) {
	if sizeHint < 0 {
		sizeHint = 0
	}
	if sizeHint > maxCapacity {
		return nil, fmt.Errorf("new %q: size hint %d: %w", label, sizeHint, ErrAllocation)
	}
	size := roundCapacity(sizeHint)

	d := &Dictionary{
		label:    label,
		lower:    size - 1,
		sorted:   true,
		keys:     make([]string, size),
		vals:     make([][]byte, size),
		hashes:   make([]uint16, size),
		sections: make([]uint16, size),
		diag:     nopDiagnostics{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close releases the backing storage. Any further use of the dictionary
// fails with ErrNilDictionary (or returns defaults, for Get). Close is
// idempotent.
func (d *Dictionary) Close() {
	if d == nil {
		return
	}
	d.keys = nil
	d.vals = nil
	d.hashes = nil
	d.sections = nil
	d.count = 0
	d.lower = -1
	d.sorted = true
}

// closed reports whether the dictionary is nil or has been closed.
func (d *Dictionary) closed() bool {
	return d == nil || d.hashes == nil
}

// Len returns the number of live entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

// Cap returns the total allocated slot count.
func (d *Dictionary) Cap() int {
	if d == nil {
		return 0
	}
	return len(d.hashes)
}

// IsEmpty reports whether the dictionary holds no entries.
func (d *Dictionary) IsEmpty() bool {
	return d.Len() == 0
}

// Label returns the display name given at creation.
func (d *Dictionary) Label() string {
	if d == nil {
		return ""
	}
	return d.label
}

// grow doubles the backing array. The new columns are allocated first and
// the live entries copied into their high half, so a failed allocation
// cannot leave the dictionary in a partially grown state. The low half is
// zero-filled, preserving the entries-at-the-top layout, and lower advances
// by the old capacity.
func (d *Dictionary) grow() error {
	old := len(d.hashes)
	if old > maxCapacity/2 {
		d.diag.Errorf("dictionary %q: cannot grow beyond %d slots", d.label, old)
		return fmt.Errorf("grow %q past %d slots: %w", d.label, old, ErrAllocation)
	}
	size := old * 2

	keys := make([]string, size)
	vals := make([][]byte, size)
	hashes := make([]uint16, size)
	sections := make([]uint16, size)
	copy(keys[old:], d.keys)
	copy(vals[old:], d.vals)
	copy(hashes[old:], d.hashes)
	copy(sections[old:], d.sections)

	d.keys = keys
	d.vals = vals
	d.hashes = hashes
	d.sections = sections
	d.lower += old

	d.diag.Infof("dictionary %q: doubled from %d to %d slots", d.label, old, size)
	return nil
}
