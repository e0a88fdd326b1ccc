package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/mabhi256/objstream/internal/tui"
	"github.com/mabhi256/objstream/utils"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse [file]",
	Short: "Interactively step through a decoded object stream",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension(
		[]string{".ser", ".bin", ".dat"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("opening %s: %w", filename, err)
		}
		defer f.Close()

		dec, err := objstream.NewFromReader(bufio.NewReader(f))
		if err != nil {
			return fmt.Errorf("decoding header: %w", err)
		}

		records, err := dec.Drain()
		if err != nil {
			return fmt.Errorf("decoding stream: %w", err)
		}

		return tui.Run(records)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
