package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// contentFlags are the mutually exclusive --content and --file inputs.
type contentFlags struct {
	content string
	file    string
}

func (f *contentFlags) register(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&f.content, "content", "c", "", usage+` ("-" reads stdin)`)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "file to read content from")
}

// read returns the supplied content and whether any was supplied. Content
// read from stdin or a file is trimmed; literal content is kept verbatim.
func (f *contentFlags) read(cmd *cobra.Command, stdin io.Reader) (string, bool, error) {
	hasContent := cmd.Flags().Changed("content")
	hasFile := cmd.Flags().Changed("file")

	switch {
	case hasContent && hasFile:
		return "", false, errors.New("cannot specify both --content and --file options")
	case hasContent && f.content == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), true, nil
	case hasContent:
		return f.content, true, nil
	case hasFile:
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", false, fmt.Errorf("read %s: %w", f.file, err)
		}
		return strings.TrimSpace(string(data)), true, nil
	default:
		return "", false, nil
	}
}
