package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/hashicorp/go-hclog"
)

// outputOptions are the flags shared by commands that emit exported colours.
type outputOptions struct {
	format   string
	template string
	output   string
	preview  bool
	copy     bool
}

// emit writes data, with a trailing newline, to the output file or to w,
// and copies it to the clipboard when requested.
func emit(w io.Writer, log hclog.Logger, opts outputOptions, data []byte) error {
	if opts.output != "" {
		if dir := filepath.Dir(opts.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(opts.output, append(data, '\n'), 0o644); err != nil { // #nosec G306 - exported colours are not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info("wrote output", "path", opts.output, "bytes", len(data)+1)
	} else if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if opts.copy {
		if err := copyToClipboard(string(data)); err != nil {
			return err
		}
		log.Info("copied output to clipboard")
	}
	return nil
}

// copyToClipboard is swapped out in tests.
var copyToClipboard = func(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
