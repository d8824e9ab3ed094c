// Package printer sends rendered documents to a print surface.
package printer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Printer prints one document.
type Printer interface {
	Print(ctx context.Context, title string, r io.Reader) error
}

// Command pipes documents into a spooler command, lp by default.
type Command struct {
	// Name is the executable. Empty means "lp".
	Name string
	// Args are passed before the title flag.
	Args []string
}

func (c Command) name() string {
	if c.Name == "" {
		return "lp"
	}
	return c.Name
}

// Print runs the command with "-t title" and the document on stdin.
func (c Command) Print(ctx context.Context, title string, r io.Reader) error {
	args := append([]string(nil), c.Args...)
	if title != "" {
		args = append(args, "-t", title)
	}
	cmd := exec.CommandContext(ctx, c.name(), args...)
	cmd.Stdin = r
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("printing with %s: %w: %s", c.name(), err, msg)
		}
		return fmt.Errorf("printing with %s: %w", c.name(), err)
	}
	return nil
}

// Stdout writes documents to W instead of printing them.
type Stdout struct {
	W io.Writer
}

func (s Stdout) Print(_ context.Context, _ string, r io.Reader) error {
	if _, err := io.Copy(s.W, r); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}
