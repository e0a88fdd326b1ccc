package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/objstream/internal/objstream"
	"github.com/mabhi256/objstream/utils"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	maxDepth int
	format   string
)

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Decode a serialized object stream and print its record tree",
	Args:  cobra.ExactArgs(1),
	ValidArgsFunction: utils.CompleteFilesByExtension(
		[]string{".ser", ".bin", ".dat"}, false),
	RunE: func(cmd *cobra.Command, args []string) error {
		if format != "tree" && format != "json" {
			return fmt.Errorf("invalid --format %q: must be \"tree\" or \"json\"", format)
		}

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

		styled := isatty.IsTerminal(os.Stdout.Fd()) && format == "tree"
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()

		if format == "tree" {
			fmt.Fprintln(out, renderLine(styled, dec.Header().String(), utils.MutedStyle))
		}

		count := 0
		for {
			rec, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("decoding record %d: %w", count, err)
			}
			if format == "json" {
				if err := printRecordJSON(out, rec); err != nil {
					return fmt.Errorf("encoding record %d as json: %w", count, err)
				}
			} else {
				printRecord(out, rec, 0, styled)
			}
			count++
		}

		return nil
	},
}

func init() {
	dumpCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "stop descending into nested records past this depth (0 = unlimited)")
	dumpCmd.Flags().StringVar(&format, "format", "tree", `output format: "tree" (indented, styled) or "json" (one JSON object per record)`)
	rootCmd.AddCommand(dumpCmd)
}

// printRecordJSON marshals one top-level record as a single-line JSON
// object. The concrete Record types carry only exported fields, so the
// default json.Marshal encoding needs no custom MarshalJSON.
func printRecordJSON(w io.Writer, rec objstream.Record) error {
	return json.NewEncoder(w).Encode(rec)
}

func renderLine(styled bool, text string, style lipgloss.Style) string {
	if !styled {
		return text
	}
	return style.Render(text)
}

func printRecord(w io.Writer, rec objstream.Record, depth int, styled bool) {
	if maxDepth > 0 && depth > maxDepth {
		fmt.Fprintf(w, "%s%s\n", utils.Indent(depth), renderLine(styled, "...", utils.MutedStyle))
		return
	}

	indent := utils.Indent(depth)
	tag := renderLine(styled, rec.Kind().String(), utils.TagStyle)

	switch v := rec.(type) {
	case *objstream.NewClassDesc:
		fmt.Fprintf(w, "%s%s %s\n", indent, tag, v.Name)
		for _, field := range v.Fields {
			fmt.Fprintf(w, "%s  %s %s\n", indent, field.Code, field.Name)
		}
		for _, ann := range v.Annotation {
			printRecord(w, ann, depth+1, styled)
		}
		if v.Super != nil {
			printRecord(w, v.Super, depth+1, styled)
		}

	case *objstream.ProxyClassDesc:
		fmt.Fprintf(w, "%s%s %v\n", indent, tag, v.Interfaces)
		if v.Super != nil {
			printRecord(w, v.Super, depth+1, styled)
		}

	case *objstream.ClassDesc:
		if v.Body != nil {
			printRecord(w, v.Body, depth, styled)
		}

	case *objstream.NewObject:
		fmt.Fprintf(w, "%s%s\n", indent, tag)
		if v.Desc != nil {
			printRecord(w, v.Desc, depth+1, styled)
		}
		for _, val := range v.SlotValues {
			printValue(w, val, depth+1, styled)
		}
		for _, ann := range v.BlockAnnotations {
			for _, rec := range ann {
				printRecord(w, rec, depth+1, styled)
			}
		}

	case *objstream.NewArray:
		fmt.Fprintf(w, "%s%s %s[%d]\n", indent, tag, v.ElementType, v.Size)
		for _, val := range v.Elements {
			printValue(w, val, depth+1, styled)
		}

	case *objstream.Enum:
		fmt.Fprintf(w, "%s%s %s\n", indent, tag, v.Name)

	case *objstream.Reference:
		handle := renderLine(styled, fmt.Sprintf("0x%x", v.Handle), utils.HandleStyle)
		fmt.Fprintf(w, "%s%s -> %s\n", indent, tag, handle)

	case *objstream.Exception:
		fmt.Fprintf(w, "%s%s\n", indent, renderLine(styled, rec.Kind().String(), utils.ErrorStyle))
		if v.Thrown != nil {
			printRecord(w, v.Thrown, depth+1, styled)
		}

	case *objstream.String:
		fmt.Fprintf(w, "%s%s %s\n", indent, tag, renderLine(styled, v.String(), utils.StringStyle))

	case *objstream.LongString:
		fmt.Fprintf(w, "%s%s %s\n", indent, tag, renderLine(styled, v.String(), utils.StringStyle))

	case *objstream.BlockData:
		fmt.Fprintf(w, "%s%s\n", indent, renderLine(styled, v.String(), utils.MutedStyle))

	case *objstream.BlockDataLong:
		fmt.Fprintf(w, "%s%s\n", indent, renderLine(styled, v.String(), utils.MutedStyle))

	default:
		fmt.Fprintf(w, "%s%s\n", indent, tag)
	}
}

func printValue(w io.Writer, v objstream.Value, depth int, styled bool) {
	if rec, ok := v.(objstream.Record); ok {
		printRecord(w, rec, depth, styled)
		return
	}
	fmt.Fprintf(w, "%s%s\n", utils.Indent(depth), renderLine(styled, fmt.Sprintf("%v", v), utils.ValueStyle))
}
