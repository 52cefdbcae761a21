package output

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/gubarz/chatmd/internal/chat"
)

// Schema returns the JSON Schema of the parsed message array
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{}
	message := r.Reflect(&chat.Message{})

	schema := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "chatmd messages",
		Description: "Messages parsed from a chat transcript, in conversation order.",
		Type:        "array",
		Items:       &jsonschema.Schema{Ref: message.Ref},
		Definitions: message.Definitions,
	}

	return json.MarshalIndent(schema, "", "  ")
}
