package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageJSONShape(t *testing.T) {
	messages := []Message{
		{
			Role: RoleUser,
			Content: []ContentItem{
				NewText("what is on the image?"),
				NewImage("image/jpg", "aW1hZ2UgZGF0YQo="),
			},
		},
	}

	data, err := json.Marshal(messages)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{
			"role": "user",
			"content": [
				{"type": "text", "text": "what is on the image?"},
				{"type": "image_url", "image_url": {"url": "data:image/jpg;base64,aW1hZ2UgZGF0YQo="}}
			]
		}
	]`, string(data))
}

func TestContentItemImage(t *testing.T) {
	tests := []struct {
		name     string
		item     ContentItem
		wantOK   bool
		wantMime string
		wantData string
	}{
		{
			name:     "image item",
			item:     NewImage("image/png", "AAEC"),
			wantOK:   true,
			wantMime: "image/png",
			wantData: "AAEC",
		},
		{
			name:   "text item",
			item:   NewText("hello"),
			wantOK: false,
		},
		{
			name:   "non data uri",
			item:   ContentItem{Type: ContentImageURL, ImageURL: &ImageURL{URL: "https://example.com/a.png"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, ok := tt.item.Image()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMime, mime)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestMessageText(t *testing.T) {
	msg := Message{
		Role: RoleUser,
		Content: []ContentItem{
			NewText("first"),
			NewImage("image/gif", "R0lG"),
			NewText("second"),
		},
	}

	assert.Equal(t, "first\n\nsecond", msg.Text())
	assert.Equal(t, 1, msg.Images())
}
