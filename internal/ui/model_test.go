package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/chatmd/internal/chat"
)

func testMessages() []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: []chat.ContentItem{chat.NewText("be brief")}},
		{Role: chat.RoleUser, Content: []chat.ContentItem{
			chat.NewText("what animal is this?"),
			chat.NewImage("image/png", "aGVsbG8="),
		}},
		{Role: chat.RoleAssistant, Content: []chat.ContentItem{chat.NewText("a cat\non a mat")}},
	}
}

func newTestModel() model {
	parse := func() ([]chat.Message, error) { return testMessages(), nil }
	m := newModel("chat.txt", parse, testMessages())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(model)
}

func send(m model, msg tea.Msg) (model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorMovement(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		expected int
	}{
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}}, 1},
		{"j twice", []tea.KeyMsg{runes("j"), runes("j")}, 2},
		{"stops at end", []tea.KeyMsg{runes("j"), runes("j"), runes("j"), runes("j")}, 2},
		{"up at top", []tea.KeyMsg{{Type: tea.KeyUp}}, 0},
		{"last then k", []tea.KeyMsg{runes("G"), runes("k")}, 1},
		{"first", []tea.KeyMsg{runes("G"), runes("g")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel()
			for _, k := range tt.keys {
				m, _ = send(m, k)
			}
			if m.cursor != tt.expected {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.expected)
			}
		})
	}
}

func TestFilter(t *testing.T) {
	m := newTestModel()
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusFilter {
		t.Fatalf("focus = %v, want filter", m.focus)
	}

	for _, r := range "CAT" {
		m, _ = send(m, runes(string(r)))
	}
	if len(m.filtered) != 3 {
		t.Fatalf("filtered before debounce = %d, want 3", len(m.filtered))
	}

	m, _ = send(m, filterMsg{})
	if len(m.filtered) != 1 || m.filtered[0].msg.Role != chat.RoleAssistant {
		t.Fatalf("filtered = %+v, want only the assistant message", m.filtered)
	}

	// role names are searchable too
	m.filter.SetValue("user animal")
	m, _ = send(m, filterMsg{})
	if len(m.filtered) != 1 || m.filtered[0].index != 1 {
		t.Fatalf("filtered = %+v, want the user message", m.filtered)
	}

	// esc clears a non-empty filter instead of quitting
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || m.quitting {
		t.Fatal("esc with a filter should not quit")
	}
	if len(m.filtered) != 3 {
		t.Errorf("filtered after clear = %d, want 3", len(m.filtered))
	}
}

func TestFilterNoMatches(t *testing.T) {
	m := newTestModel()
	m.filter.SetValue("zebra")
	m, _ = send(m, filterMsg{})
	if len(m.filtered) != 0 {
		t.Fatalf("filtered = %d, want 0", len(m.filtered))
	}
	if _, ok := m.selected(); ok {
		t.Error("nothing should be selected")
	}
	m, _ = send(m, runes("j"))
	if !strings.Contains(m.View(), "no matches") {
		t.Error("view should report no matches")
	}
}

func TestQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m, cmd := send(newTestModel(), key)
		if !m.quitting || cmd == nil {
			t.Fatalf("%s: expected quit", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", key)
		}
		if m.View() != "" {
			t.Errorf("%s: view should be empty after quit", key)
		}
	}
}

func TestReparse(t *testing.T) {
	m := newTestModel()

	_, cmd := send(m, fileChangedMsg{})
	if cmd == nil {
		t.Fatal("file change should trigger a re-parse")
	}

	parsed, ok := m.reparse()().(parsedMsg)
	if !ok || parsed.err != nil || len(parsed.messages) != 3 {
		t.Fatalf("reparse = %+v", parsed)
	}

	m, _ = send(m, parsedMsg{messages: testMessages()[:1]})
	if len(m.items) != 1 || m.failed {
		t.Errorf("items = %d failed = %v, want 1 item", len(m.items), m.failed)
	}
	if !strings.HasPrefix(m.status, "reloaded 1 messages") {
		t.Errorf("status = %q", m.status)
	}
}

func TestParseErrorKeepsMessages(t *testing.T) {
	m := newTestModel()
	m, _ = send(m, parsedMsg{err: errors.New("malformed transcript: line 1: text before the first marker")})

	if !m.failed || !strings.HasPrefix(m.status, "parse error: ") {
		t.Errorf("status = %q failed = %v", m.status, m.failed)
	}
	if len(m.items) != 3 {
		t.Errorf("items = %d, want the previous 3", len(m.items))
	}
}

func TestView(t *testing.T) {
	m := newTestModel()
	view := m.View()
	for _, want := range []string{"chat.txt", "3/3 messages", "system", "be brief"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = send(m, runes("j"))
	if !strings.Contains(m.View(), "[image image/png, 8 base64 chars]") {
		t.Error("detail should describe the image")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		msg      chat.Message
		expected string
	}{
		{testMessages()[2], "a cat"},
		{chat.Message{Role: chat.RoleUser, Content: []chat.ContentItem{chat.NewImage("image/gif", "R0lG")}}, "[1 image(s)]"},
	}
	for _, tt := range tests {
		if got := (messageItem{msg: tt.msg}).summary(); got != tt.expected {
			t.Errorf("summary() = %q, want %q", got, tt.expected)
		}
	}
}

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		cursor, total, height, offset int
		start, end                    int
	}{
		{0, 10, 5, 0, 0, 5},
		{7, 10, 5, 0, 3, 8},
		{2, 10, 5, 4, 2, 7},
		{1, 3, 5, 0, 0, 3},
	}
	for _, tt := range tests {
		offset := tt.offset
		start, end := scrollWindow(tt.cursor, tt.total, tt.height, &offset)
		if start != tt.start || end != tt.end {
			t.Errorf("scrollWindow(%d, %d, %d, %d) = %d, %d, want %d, %d",
				tt.cursor, tt.total, tt.height, tt.offset, start, end, tt.start, tt.end)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("héllo wörld", 8); got != "héllo..." {
		t.Errorf("truncateString = %q", got)
	}
	if got := truncateString("short", 8); got != "short" {
		t.Errorf("truncateString = %q", got)
	}
}
