package blkdev

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fstabtools/fstabxref/dict"
)

// Default locations of the udev symlink trees.
const (
	ByUUIDDir      = "/dev/disk/by-uuid"
	ByLabelDir     = "/dev/disk/by-label"
	ByPartUUIDDir  = "/dev/disk/by-partuuid"
	ByPartLabelDir = "/dev/disk/by-partlabel"
)

// Pair maps one filesystem identifier to the device node it belongs to.
// Device is the bare node name (sdb7), not the /dev path.
type Pair struct {
	ID     string
	Device string
}

// ScanByUUID reads a by-uuid symlink tree and returns uuid/device pairs,
// sorted by ID. Entries that are not symlinks are skipped.
func ScanByUUID(dir string) ([]Pair, error) {
	return scanLinks(dir, false)
}

// ScanByLabel reads a by-label symlink tree and returns label/device pairs,
// sorted by ID. Link names carry \xNN hex escapes for special characters,
// which are decoded.
func ScanByLabel(dir string) ([]Pair, error) {
	return scanLinks(dir, true)
}

// ScanByPartUUID reads a by-partuuid symlink tree and returns
// partuuid/device pairs, sorted by ID.
func ScanByPartUUID(dir string) ([]Pair, error) {
	return scanLinks(dir, false)
}

// ScanByPartLabel reads a by-partlabel symlink tree and returns
// partlabel/device pairs, sorted by ID. Link names are decoded like labels.
func ScanByPartLabel(dir string) ([]Pair, error) {
	return scanLinks(dir, true)
}

func scanLinks(dir string, decode bool) ([]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var pairs []Pair
	for _, e := range entries {
		if e.Type()&os.ModeSymlink == 0 {
			continue
		}
		target, err := os.Readlink(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		id := e.Name()
		if decode {
			id = decodeUdev(id)
		}
		pairs = append(pairs, Pair{ID: id, Device: filepath.Base(target)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].ID < pairs[j].ID })
	return pairs, nil
}

// decodeUdev decodes the \xNN hex escapes udev uses in by-label link names,
// e.g. \x20 for a space. Malformed sequences pass through unchanged.
func decodeUdev(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' && isHex(s[i+2]) && isHex(s[i+3]) {
			b.WriteByte(hexVal(s[i+2])<<4 | hexVal(s[i+3]))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// Populate bulk-loads identifier/device pairs into a dictionary. Pairs with
// an empty ID are skipped. The load is atomic: on a hash collision nothing
// is added and the dictionary is unchanged.
func Populate(d *dict.Dictionary, pairs []Pair) error {
	entries := make([]dict.Entry, 0, len(pairs))
	for _, p := range pairs {
		if p.ID == "" {
			continue
		}
		entries = append(entries, dict.Entry{Key: p.ID, Value: p.Device})
	}
	return d.Load(entries)
}
