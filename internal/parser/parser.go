package parser

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gubarz/chatmd/internal/chat"
	"github.com/gubarz/chatmd/internal/include"
	"github.com/gubarz/chatmd/internal/logging"
)

// Options configures a Parser
type Options struct {
	Dir      string             // base for relative include paths, CWD when empty
	MaxFiles int                // include limit per parse, 0 for unlimited
	FS       include.FileSystem // defaults to include.OSFileSystem{Dir: Dir}
	Logger   *logrus.Entry      // defaults to a discard logger
}

// Parser turns transcripts into messages. It holds no per-parse state and is
// safe for concurrent use.
type Parser struct {
	fs       include.FileSystem
	log      *logrus.Entry
	maxFiles int
}

// New creates a parser
func New(opts Options) *Parser {
	p := &Parser{
		fs:       opts.FS,
		log:      opts.Logger,
		maxFiles: opts.MaxFiles,
	}
	if p.fs == nil {
		p.fs = include.OSFileSystem{Dir: opts.Dir}
	}
	if p.log == nil {
		p.log = logging.Discard()
	}
	return p
}

// ParseChatMessages parses a transcript with default options
func ParseChatMessages(text string) ([]chat.Message, error) {
	return New(Options{MaxFiles: include.DefaultMaxFiles}).Parse(text)
}

// Parse parses a transcript, resolving include sections against the filesystem
func (p *Parser) Parse(text string) ([]chat.Message, error) {
	sections, err := Sections(text)
	if err != nil {
		return nil, err
	}

	resolver := include.NewResolver(p.fs, p.log, p.maxFiles)
	asm := newAssembler()

	for _, r := range ResolveRoles(sections) {
		switch r.Kind {
		case KindThinking:
			continue
		case KindInclude:
			items, err := resolver.Resolve(r.Body)
			if err != nil {
				return nil, fmt.Errorf("include at line %d: %w", r.Line, err)
			}
			asm.add(r.Role, items)
		default:
			asm.add(r.Role, textContent(r.Body))
		}
	}

	return asm.finish(), nil
}

// ParseFile reads and parses a transcript file
func (p *Parser) ParseFile(path string) ([]chat.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(data))
}

func textContent(body string) []chat.ContentItem {
	if body == "" {
		return nil
	}
	return []chat.ContentItem{chat.NewText(body)}
}
