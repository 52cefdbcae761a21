package parser

import "github.com/gubarz/chatmd/internal/chat"

// assembler merges consecutive runs of the same effective role into messages
type assembler struct {
	messages []chat.Message
	role     chat.Role
	content  []chat.ContentItem
}

func newAssembler() *assembler {
	return &assembler{messages: make([]chat.Message, 0)}
}

func (a *assembler) add(role chat.Role, items []chat.ContentItem) {
	if role != a.role {
		a.close()
		a.role = role
	}
	a.content = append(a.content, items...)
}

// close emits the current run, dropping it when nothing was produced
func (a *assembler) close() {
	if len(a.content) > 0 {
		a.messages = append(a.messages, chat.Message{Role: a.role, Content: a.content})
	}
	a.content = nil
}

func (a *assembler) finish() []chat.Message {
	a.close()
	return a.messages
}
