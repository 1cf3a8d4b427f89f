// Package fstab parses fstab-format lines into structured entries.
//
// The parser understands the six classic fstab fields (spec, file, vfstype,
// options, freq, passno), treats '#' lines and blank lines as non-entries,
// and decodes the \ooo octal escapes fstab uses for embedded whitespace.
// It also classifies the first field into a source kind (UUID=, LABEL=,
// PARTUUID=, PARTLABEL=, or a plain device path) so callers can resolve the
// identifier against a device dictionary and annotate the original line.
//
// The package deliberately never touches the filesystem; callers hand it
// readers and lines and keep ownership of all I/O.
package fstab
