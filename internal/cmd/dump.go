package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewDumpCmd creates and returns the dump subcommand for the fstabxref CLI.
// It prints the identifier dictionary a cross-reference run would use.
func NewDumpCmd() *cobra.Command {
	var (
		raw   bool
		meta  bool
		color bool
		opts  discoverOpts
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Inspect the identifier dictionary",
		Long: `Build the identifier dictionary from the discovery source and print
its contents.

By default the live identifier/device pairs are printed. --raw shows the
underlying slot layout including free slots, and --meta shows only the
header fields. --color tints each identifier by its own hash so repeated
runs are easy to compare visually.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runDump(cmd.Context(), raw, meta, color, opts)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Show the slot layout including free slots")
	cmd.Flags().BoolVar(&meta, "meta", false, "Show only the dictionary header")
	cmd.Flags().BoolVar(&color, "color", false, "Color identifiers by hash")
	opts.register(cmd)

	return cmd
}

func runDump(ctx context.Context, raw, meta, color bool, opts discoverOpts) {
	d, err := buildDictionary(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to build device dictionary: %v", err)
	}
	defer d.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch {
	case meta:
		d.Meta(out)
	case raw:
		d.RawDump(out)
	case color:
		for i := 0; i < d.Cap(); i++ {
			key, value, ok := d.At(i)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s=%s\n", tint(key), value)
		}
	default:
		d.Dump(out)
	}
}

// tint wraps s in a 256-color ANSI escape chosen from its hash, so the same
// identifier always renders in the same color.
func tint(s string) string {
	// 6x6x6 color cube, avoiding the darkest shades
	c := 52 + colorhash.HashString(s)%179
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", c, s)
}
