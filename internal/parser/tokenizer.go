package parser

import (
	"regexp"
	"strings"
)

// Marker tells who authored a section
type Marker int

const (
	HumanAuthored Marker = iota // >>> role
	ModelAuthored               // <<< role
)

func (m Marker) String() string {
	if m == ModelAuthored {
		return "<<<"
	}
	return ">>>"
}

// Section is one marker-delimited block of a transcript
type Section struct {
	Marker Marker
	Role   string
	Body   string
	Line   int // 1-based line of the marker
}

var markerRegex = regexp.MustCompile(`^\s*(>>>|<<<)\s+(\S(?:.*\S)?)\s*$`)

// Sections splits a transcript into its marker-delimited sections
func Sections(text string) ([]Section, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var sections []Section
	var current *Section
	var body []string

	for i, line := range lines {
		if matches := markerRegex.FindStringSubmatch(line); matches != nil {
			if current != nil {
				current.Body = trimBlankLines(body)
				sections = append(sections, *current)
			}
			marker := HumanAuthored
			if matches[1] == "<<<" {
				marker = ModelAuthored
			}
			current = &Section{Marker: marker, Role: matches[2], Line: i + 1}
			body = body[:0]
			continue
		}

		if current == nil {
			if strings.TrimSpace(line) != "" {
				return nil, &MalformedInputError{Line: i + 1, Reason: "text before the first section marker"}
			}
			continue
		}
		body = append(body, line)
	}

	if current == nil {
		return nil, &MalformedInputError{Reason: "no section marker found"}
	}
	current.Body = trimBlankLines(body)
	sections = append(sections, *current)
	return sections, nil
}

// trimBlankLines drops whitespace-only lines at both ends and keeps the rest verbatim
func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
