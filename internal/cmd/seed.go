package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the fstabxref CLI.
// It fabricates a device tree and fstab so xref can be exercised without
// root access or real disks.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		count      int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a fake device tree and matching fstab",
		Long: `Generate a by-uuid and by-label symlink tree plus an fstab that
references them, for testing the cross-reference commands.

The output directory receives:
  - disk/by-uuid/<uuid> -> ../../sdX
  - disk/by-label/<label> -> ../../sdX  (every fourth device gets a label)
  - fstab referencing the generated devices by UUID and LABEL

Point xref at the result:
  fstabxref xref -i OUT/fstab --by-uuid OUT/disk/by-uuid --by-label OUT/disk/by-label`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, count, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&count, "count", "c", 8, "Number of devices to generate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, count int, verbose bool) {
	byUUID := filepath.Join(outputPath, "disk", "by-uuid")
	byLabel := filepath.Join(outputPath, "disk", "by-label")
	for _, dir := range []string{byUUID, byLabel} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	fstabFile, err := os.Create(filepath.Join(outputPath, "fstab"))
	if err != nil {
		log.Fatalf("Failed to create fstab: %v", err)
	}
	defer fstabFile.Close()
	fmt.Fprintln(fstabFile, "# generated test fstab")

	for i := 0; i < count; i++ {
		device := fmt.Sprintf("sd%c%d", 'a'+i/4, 1+i%4)
		id := uuid.New().String()
		target := filepath.Join("..", "..", device)

		if err := os.Symlink(target, filepath.Join(byUUID, id)); err != nil {
			log.Fatalf("Failed to link %s: %v", id, err)
		}

		mount := fmt.Sprintf("/mnt/vol%d", i)
		passno := 2
		if i == 0 {
			mount = "/"
			passno = 1
		}

		// every fourth device also gets a label, referenced by LABEL=
		if i%4 == 3 {
			label := fmt.Sprintf("%svol%d", device, i)
			if err := os.Symlink(target, filepath.Join(byLabel, label)); err != nil {
				log.Fatalf("Failed to link %s: %v", label, err)
			}
			fmt.Fprintf(fstabFile, "LABEL=%-42s %-12s ext4 defaults 0 %d\n", label, mount, passno)
		} else {
			fmt.Fprintf(fstabFile, "UUID=%-43s %-12s ext4 defaults 0 %d\n", id, mount, passno)
		}

		if verbose {
			fmt.Printf("%s -> %s\n", id, device)
		}
	}

	if verbose {
		fmt.Printf("Generated %d devices under %s\n", count, outputPath)
	}
}
