package fstab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Sentinel errors for package fstab.
var (
	// ErrBadLine is returned for lines that are neither comments nor valid
	// fstab entries.
	ErrBadLine = errors.New("malformed fstab line")
)

// SourceKind classifies the first fstab field.
type SourceKind int

const (
	// SourceDevice is a plain device path such as /dev/sda1.
	SourceDevice SourceKind = iota
	// SourceUUID is a UUID=... source.
	SourceUUID
	// SourceLabel is a LABEL=... source.
	SourceLabel
	// SourcePartUUID is a PARTUUID=... source.
	SourcePartUUID
	// SourcePartLabel is a PARTLABEL=... source.
	SourcePartLabel
)

func (k SourceKind) String() string {
	switch k {
	case SourceUUID:
		return "UUID"
	case SourceLabel:
		return "LABEL"
	case SourcePartUUID:
		return "PARTUUID"
	case SourcePartLabel:
		return "PARTLABEL"
	default:
		return "device"
	}
}

// Entry is one parsed fstab line.
type Entry struct {
	Spec    string // first field with escapes decoded, e.g. UUID=abcd or /dev/sda1
	File    string // mount point
	VFSType string
	Options string
	Freq    int
	Passno  int
	Raw     string // the line as read, unmodified
}

// Kind classifies the entry's source field.
func (e Entry) Kind() SourceKind {
	switch {
	case strings.HasPrefix(e.Spec, "UUID="):
		return SourceUUID
	case strings.HasPrefix(e.Spec, "LABEL="):
		return SourceLabel
	case strings.HasPrefix(e.Spec, "PARTUUID="):
		return SourcePartUUID
	case strings.HasPrefix(e.Spec, "PARTLABEL="):
		return SourcePartLabel
	default:
		return SourceDevice
	}
}

// ID returns the identifier portion of the source field: the text after the
// '=' for tagged sources, or the whole spec for plain device paths.
func (e Entry) ID() string {
	if i := strings.IndexByte(e.Spec, '='); i >= 0 && e.Kind() != SourceDevice {
		return e.Spec[i+1:]
	}
	return e.Spec
}

// Annotate returns the original line with the resolved device appended as a
// trailing comment, the way the cross-reference output is written.
func (e Entry) Annotate(device string) string {
	if device == "" {
		return e.Raw
	}
	if !strings.HasPrefix(device, "/dev/") {
		device = "/dev/" + device
	}
	return e.Raw + "\t# " + device
}

// ParseLine parses a single fstab line. The second return value is false for
// blank lines and comments, which are not entries but are not errors either.
func ParseLine(line string) (Entry, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 4 || len(fields) > 6 {
		return Entry{}, false, fmt.Errorf("%w: %d fields", ErrBadLine, len(fields))
	}

	e := Entry{
		Spec:    Unescape(fields[0]),
		File:    Unescape(fields[1]),
		VFSType: fields[2],
		Options: fields[3],
		Raw:     line,
	}
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Entry{}, false, fmt.Errorf("%w: freq %q", ErrBadLine, fields[4])
		}
		e.Freq = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return Entry{}, false, fmt.Errorf("%w: passno %q", ErrBadLine, fields[5])
		}
		e.Passno = n
	}
	return e, true, nil
}

// Parse reads fstab-format text and returns its entries in order, skipping
// comments and blank lines. The first malformed line aborts the parse.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		e, ok, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Unescape decodes the \ooo octal escapes fstab uses for whitespace in the
// spec and file fields (e.g. \040 for a space). Sequences that are not three
// octal digits pass through unchanged.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
