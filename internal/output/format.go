package output

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/gubarz/chatmd/internal/chat"
)

// Format names an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates a format name. An empty name is returned as is so the
// caller can pick a default.
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case "", FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: json, yaml, text)", name)
	}
}

// DefaultFormat picks text for terminals and json for everything else
func DefaultFormat(w io.Writer) Format {
	if f, ok := w.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return FormatText
		}
	}
	return FormatJSON
}

// Options tune rendering
type Options struct {
	Compact   bool                    // single-line json
	RoleColor func(role string) string // ANSI code per role for text output
}

// Render writes messages to w in the given format
func Render(w io.Writer, messages []chat.Message, format Format, opts Options) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(messages); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return renderText(w, messages, opts)
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false) // Keep "==> path <==" headers readable
		if !opts.Compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(messages)
	}
}

func renderText(w io.Writer, messages []chat.Message, opts Options) error {
	dim := color.New(color.Faint)

	for i, m := range messages {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := roleColor(opts, string(m.Role)).Sprintf("%s %s", marker(m.Role), m.Role)
		if _, err := fmt.Fprintln(w, heading); err != nil {
			return err
		}

		for _, c := range m.Content {
			fmt.Fprintln(w)
			if mime, data, ok := c.Image(); ok {
				fmt.Fprintln(w, dim.Sprintf("[image %s, %s]", mime, imageSize(data)))
				continue
			}
			if _, err := fmt.Fprintln(w, c.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

func marker(role chat.Role) string {
	if role == chat.RoleAssistant {
		return "<<<"
	}
	return ">>>"
}

func roleColor(opts Options, role string) *color.Color {
	if opts.RoleColor == nil {
		return color.New(color.Bold)
	}
	code, err := strconv.Atoi(opts.RoleColor(role))
	if err != nil {
		return color.New(color.Bold)
	}
	return color.New(color.Attribute(code), color.Bold)
}

func imageSize(data string) string {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "invalid data"
	}
	return fmt.Sprintf("%d bytes", len(decoded))
}
