package output

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/gubarz/chatmd/internal/chat"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := io.WriteString(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Printer
// ============================================================================

// Mode represents where rendered messages go
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
)

// Printer renders parsed messages and delivers them to stdout or the clipboard
type Printer struct {
	out       io.Writer
	clipboard Clipboard
	opts      Options
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:       out,
		clipboard: &systemClipboard{fallback: out},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (p *Printer) WithClipboard(c Clipboard) *Printer {
	p.clipboard = c
	return p
}

// WithOptions sets rendering options
func (p *Printer) WithOptions(opts Options) *Printer {
	p.opts = opts
	return p
}

// Output renders messages in the given format and delivers them according to mode
func (p *Printer) Output(messages []chat.Message, format Format, mode Mode) error {
	var buf bytes.Buffer
	if err := Render(&buf, messages, format, p.opts); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	switch mode {
	case ModeCopy:
		return p.clipboard.Copy(buf.String())
	default: // print
		_, err := p.out.Write(buf.Bytes())
		return err
	}
}
