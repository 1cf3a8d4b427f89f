// Package main provides the fstabxref command-line interface.
//
// fstabxref cross-references the UUID= and LABEL= sources in an fstab with
// the block devices behind them. Identifiers are discovered from the udev
// symlink trees under /dev/disk/ or from lsblk, loaded into a flat
// hash-sorted dictionary, and matched against the fstab entries.
//
// The main binary supports multiple subcommands:
//   - xref: Annotate an fstab with the device behind each source
//   - devices: List block devices with their fstab mount points
//   - dump: Inspect the identifier dictionary
//   - seed: Generate a fake device tree and fstab for testing
package main
