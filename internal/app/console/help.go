package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/sir_venger/splitter/pkg/digest"
)

const helpText = `splitter: split a file into parts and join them back with integrity check.

Usage:
  %[1]s split <file> <parts>          split into exactly <parts> parts
  %[1]s split-size <file> <size>      split into parts of <size> (B, KB, MB, GB; default B)
  %[1]s join <parts-dir> [output]     join parts back, verifying the recorded digest
  %[1]s inspect <parts-dir>           show the descriptor and the state of the parts
  %[1]s help                          show this help

Layout:
  <file> is moved into <name>_parts/ next to it and kept there as a safety copy.
  Parts are named <name>_part_001<ext>, <name>_part_002<ext>, ...
  !split_info.txt records the original name, size, part count and digest.

Digest algorithms: %[2]s (default %[3]s).

Exit codes:
  0 ok, 1 unexpected error, 2 invalid argument, 3 not found, 4 i/o failure,
  5 integrity mismatch, 6 no parts found, 7 missing parts, 8 parts directory not empty.
`

// PrintHelp печатает справку по командам.
func PrintHelp(w io.Writer, program string, flags string) {
	fmt.Fprintf(w, helpText, program, strings.Join(digest.Algorithms(), ", "), digest.Default)
	if flags != "" {
		fmt.Fprintf(w, "\nFlags:\n%s", flags)
	}
}
