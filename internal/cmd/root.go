package cmd

import (
	"github.com/fstabtools/fstabxref/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the fstabxref CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fstabxref",
		Short: "fstabxref - Cross-reference fstab sources with block devices",
		Long: `fstabxref resolves the UUID= and LABEL= sources in an fstab to the
block devices behind them.

Identifiers are discovered from the udev symlink trees under /dev/disk/
or from lsblk, loaded into an in-memory dictionary, and matched against
the fstab entries.

Use subcommands to perform different operations:
  - xref: Annotate an fstab with the device behind each source
  - devices: List block devices with their fstab mount points
  - dump: Inspect the identifier dictionary
  - seed: Generate a fake device tree and fstab for testing`,
		Version: version.GetFullVersion(),
	}

	groupXref := "xref"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupXref,
		Title: "Cross-Reference Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	xrefCmd := NewXrefCmd()
	devicesCmd := NewDevicesCmd()
	dumpCmd := NewDumpCmd()
	seedCmd := NewSeedCmd()

	xrefCmd.GroupID = groupXref
	devicesCmd.GroupID = groupXref
	dumpCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(xrefCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
