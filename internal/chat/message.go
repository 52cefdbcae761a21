package chat

import (
	"fmt"
	"strings"
)

// Role identifies who a message is attributed to
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentType tags a ContentItem on the wire
type ContentType string

const (
	ContentText     ContentType = "text"
	ContentImageURL ContentType = "image_url"
)

// ImageURL carries an image as a data URI
type ImageURL struct {
	URL string `json:"url" yaml:"url"`
}

// ContentItem is a single piece of message content: either text or an image
type ContentItem struct {
	Type     ContentType `json:"type" yaml:"type" jsonschema:"enum=text,enum=image_url"`
	Text     string      `json:"text,omitempty" yaml:"text,omitempty"`
	ImageURL *ImageURL   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Message is one conversation turn with its ordered content
type Message struct {
	Role    Role          `json:"role" yaml:"role"`
	Content []ContentItem `json:"content" yaml:"content"`
}

// NewText creates a text content item
func NewText(text string) ContentItem {
	return ContentItem{Type: ContentText, Text: text}
}

// NewImage creates an image content item from a mime type and base64 payload
func NewImage(mimeType, base64Data string) ContentItem {
	return ContentItem{
		Type:     ContentImageURL,
		ImageURL: &ImageURL{URL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64Data)},
	}
}

// IsImage reports whether the item is an image
func (c ContentItem) IsImage() bool {
	return c.Type == ContentImageURL && c.ImageURL != nil
}

// Image splits an image item's data URI back into mime type and base64 payload
func (c ContentItem) Image() (mimeType, base64Data string, ok bool) {
	if !c.IsImage() {
		return "", "", false
	}
	rest, found := strings.CutPrefix(c.ImageURL.URL, "data:")
	if !found {
		return "", "", false
	}
	mimeType, base64Data, found = strings.Cut(rest, ";base64,")
	if !found {
		return "", "", false
	}
	return mimeType, base64Data, true
}

// Text returns the text parts of the message joined by blank lines
func (m Message) Text() string {
	var parts []string
	for _, c := range m.Content {
		if c.Type == ContentText && c.Text != "" {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Images returns the number of image parts in the message
func (m Message) Images() int {
	n := 0
	for _, c := range m.Content {
		if c.IsImage() {
			n++
		}
	}
	return n
}
