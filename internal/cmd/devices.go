package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fstabtools/fstabxref/internal/blkdev"
	"github.com/fstabtools/fstabxref/internal/fstab"
	"github.com/spf13/cobra"
)

// NewDevicesCmd creates and returns the devices subcommand for the fstabxref
// CLI. It lists lsblk devices alongside the fstab entry each one backs.
func NewDevicesCmd() *cobra.Command {
	var fstabPath string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List block devices with their fstab mount points",
		Long: `Run lsblk and print every block device with its filesystem type,
label, UUID, and the mount point the fstab declares for it.

A device matches an fstab entry when the entry's UUID, label, or device
path refers to it. Devices with no entry show "not found".`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runDevices(cmd.Context(), fstabPath)
		},
	}

	cmd.Flags().StringVarP(&fstabPath, "fstab", "f", "/etc/fstab", "fstab file to cross-reference")

	return cmd
}

func runDevices(ctx context.Context, fstabPath string) {
	devs, err := blkdev.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list block devices: %v", err)
	}

	f, err := os.Open(fstabPath)
	if err != nil {
		log.Fatalf("Failed to open fstab: %v", err)
	}
	entries, err := fstab.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse fstab: %v", err)
	}

	printDevices(os.Stdout, devs, entries)
}

// printDevices writes the device table. Matching is by UUID first, then
// label, partition UUID, partition label, then plain device path.
func printDevices(w io.Writer, devs []blkdev.Device, entries []fstab.Entry) {
	byID := make(map[string]fstab.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID()] = e
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-12s %-8s %-20s %-38s %s\n", "NAME", "FSTYPE", "LABEL", "UUID", "FSTAB")
	for _, d := range devs {
		mount := "not found"
		if e, ok := lookupEntry(byID, d); ok {
			mount = e.File
		}
		fmt.Fprintf(bw, "%-12s %-8s %-20s %-38s %s\n", d.Name, d.FSType, d.Label, d.UUID, mount)
	}
	bw.Flush()
}

func lookupEntry(byID map[string]fstab.Entry, d blkdev.Device) (fstab.Entry, bool) {
	for _, id := range []string{d.UUID, d.Label, d.PartUUID, d.PartLabel} {
		if id == "" {
			continue
		}
		if e, ok := byID[id]; ok {
			return e, true
		}
	}
	if e, ok := byID["/dev/"+d.Name]; ok {
		return e, true
	}
	return fstab.Entry{}, false
}
