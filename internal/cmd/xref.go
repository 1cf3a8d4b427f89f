package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fstabtools/fstabxref/dict"
	"github.com/fstabtools/fstabxref/internal/blkdev"
	"github.com/fstabtools/fstabxref/internal/fstab"
	"github.com/spf13/cobra"
)

const notFound = "*not found"

// discoverOpts selects where identifier/device pairs come from.
type discoverOpts struct {
	byUUIDDir      string
	byLabelDir     string
	byPartUUIDDir  string
	byPartLabelDir string
	useLsblk       bool
}

func (o *discoverOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.byUUIDDir, "by-uuid", blkdev.ByUUIDDir, "Directory of UUID symlinks")
	cmd.Flags().StringVar(&o.byLabelDir, "by-label", blkdev.ByLabelDir, "Directory of label symlinks")
	cmd.Flags().StringVar(&o.byPartUUIDDir, "by-partuuid", blkdev.ByPartUUIDDir, "Directory of partition UUID symlinks")
	cmd.Flags().StringVar(&o.byPartLabelDir, "by-partlabel", blkdev.ByPartLabelDir, "Directory of partition label symlinks")
	cmd.Flags().BoolVar(&o.useLsblk, "lsblk", false, "Discover devices via lsblk instead of /dev/disk")
}

// buildDictionary discovers identifier/device pairs and loads them into a
// fresh dictionary. With --lsblk a single lsblk run supplies every
// identifier kind; otherwise the symlink trees are scanned. Only the
// by-uuid tree is required: the label and partition trees are absent on
// systems without labeled filesystems or GPT partition tables.
func buildDictionary(ctx context.Context, opts discoverOpts) (*dict.Dictionary, error) {
	d, err := dict.New(32, "uuid")
	if err != nil {
		return nil, err
	}

	if opts.useLsblk {
		devs, err := blkdev.List(ctx)
		if err != nil {
			d.Close()
			return nil, err
		}
		if err := blkdev.Populate(d, blkdev.Pairs(devs)); err != nil {
			d.Close()
			return nil, err
		}
		return d, nil
	}

	uuids, err := blkdev.ScanByUUID(opts.byUUIDDir)
	if err != nil {
		d.Close()
		return nil, err
	}
	if err := blkdev.Populate(d, uuids); err != nil {
		d.Close()
		return nil, err
	}

	optional := []struct {
		dir  string
		scan func(string) ([]blkdev.Pair, error)
	}{
		{opts.byLabelDir, blkdev.ScanByLabel},
		{opts.byPartUUIDDir, blkdev.ScanByPartUUID},
		{opts.byPartLabelDir, blkdev.ScanByPartLabel},
	}
	for _, src := range optional {
		pairs, err := src.scan(src.dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			d.Close()
			return nil, err
		}
		if err := blkdev.Populate(d, pairs); err != nil {
			d.Close()
			return nil, err
		}
	}

	return d, nil
}

// NewXrefCmd creates and returns the xref subcommand for the fstabxref CLI.
// It annotates each tagged fstab source with the device node it resolves to.
func NewXrefCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		opts       discoverOpts
	)

	cmd := &cobra.Command{
		Use:   "xref",
		Short: "Annotate an fstab with the device behind each source",
		Long: `Read an fstab and append the resolved device node to every line
whose source is a UUID=, LABEL=, PARTUUID= or PARTLABEL= tag.

Comments, blank lines, and plain device sources pass through unchanged.
Sources with no matching device are annotated with "*not found".`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runXref(cmd.Context(), inputPath, outputPath, opts)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "/etc/fstab", "fstab file to read")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the annotated fstab here instead of stdout")
	opts.register(cmd)

	return cmd
}

func runXref(ctx context.Context, inputPath, outputPath string, opts discoverOpts) {
	d, err := buildDictionary(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to build device dictionary: %v", err)
	}
	defer d.Close()

	in, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("Failed to open fstab: %v", err)
	}
	defer in.Close()

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := annotate(d, in, out); err != nil {
		log.Fatalf("Failed to annotate fstab: %v", err)
	}
}

// annotate copies fstab text from r to w, appending the resolved device to
// every line with a tagged source.
func annotate(d *dict.Dictionary, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		e, ok, err := fstab.ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		if !ok || e.Kind() == fstab.SourceDevice {
			fmt.Fprintln(bw, line)
			continue
		}
		fmt.Fprintln(bw, e.Annotate(d.Get(e.ID(), notFound)))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return bw.Flush()
}
