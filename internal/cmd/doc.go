// Package cmd provides the command-line interface implementation for fstabxref.
//
// This package contains all the subcommand implementations for the fstabxref
// CLI tool. It uses the Cobra library for command structure and Fang for
// beautiful styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - xref: Annotate an fstab with the device behind each UUID= and LABEL= source
//   - devices: List block devices cross-referenced against fstab mount points
//   - dump: Inspect the identifier dictionary built from a discovery source
//   - seed: Generate a fake device tree and matching fstab for testing
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Discovery of block devices is
// delegated to the blkdev package and fstab parsing to the fstab package;
// the dict package holds the identifier-to-device mappings both rely on.
package cmd
