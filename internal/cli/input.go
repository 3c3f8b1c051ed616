package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readInput returns the document text for a parse/plan invocation: the
// file named by the first positional arg, or stdin when no arg (or "-")
// is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// requireText validates that input text has content to parse.
func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no input text; pass a file or pipe text on stdin")
	}
	return nil
}
