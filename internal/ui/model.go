package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/chatmd/internal/chat"
)

// ============================================================================
// Message Item
// ============================================================================

// messageItem wraps a Message with display metadata
type messageItem struct {
	index    int
	msg      chat.Message
	haystack string // lowercased role and text, searched by the filter
}

func newMessageItems(messages []chat.Message) []messageItem {
	items := make([]messageItem, len(messages))
	for i, msg := range messages {
		items[i] = messageItem{
			index:    i,
			msg:      msg,
			haystack: strings.ToLower(string(msg.Role) + "\n" + msg.Text()),
		}
	}
	return items
}

// matchesQuery checks if the item contains all search words
func (item messageItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.haystack, word) {
			return false
		}
	}
	return true
}

// summary is the one-line preview shown in the list
func (item messageItem) summary() string {
	if text := item.msg.Text(); text != "" {
		return firstLine(text)
	}
	return fmt.Sprintf("[%d image(s)]", item.msg.Images())
}

// ============================================================================
// Messages
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// parsedMsg carries the result of re-parsing the transcript
type parsedMsg struct {
	messages []chat.Message
	err      error
}

// ============================================================================
// Model
// ============================================================================

// focusArea is the part of the screen receiving keys
type focusArea int

const (
	focusList focusArea = iota
	focusFilter
)

// model is the Bubble Tea model for browsing parsed messages
type model struct {
	width  int
	height int

	title string
	parse func() ([]chat.Message, error)
	next  tea.Cmd // waits for the next file change, nil when not watching

	items     []messageItem
	filtered  []messageItem
	cursor    int
	offset    int // list scroll offset
	lastQuery string

	filter   textinput.Model
	viewport viewport.Model
	focus    focusArea

	status   string
	failed   bool
	quitting bool
}

func newModel(title string, parse func() ([]chat.Message, error), messages []chat.Message) model {
	ti := textinput.New()
	ti.Placeholder = "filter messages"
	ti.Prompt = "/ "
	ti.CharLimit = 256

	m := model{
		title:    title,
		parse:    parse,
		filter:   ti,
		viewport: viewport.New(0, 0),
	}
	m.setMessages(messages)
	return m
}

func (m model) Init() tea.Cmd {
	return m.next
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case filterMsg:
		m.applyFilter()
		return m, nil

	case fileChangedMsg:
		return m, tea.Batch(m.reparse(), m.next)

	case watchErrMsg:
		m.status = fmt.Sprintf("watch error: %v", msg.err)
		m.failed = true
		return m, m.next

	case parsedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("parse error: %v", msg.err)
			m.failed = true
			return m, nil
		}
		m.setMessages(msg.messages)
		m.status = fmt.Sprintf("reloaded %d messages at %s", len(msg.messages), time.Now().Format("15:04:05"))
		m.failed = false
		return m, nil
	}

	if m.focus == focusFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) reparse() tea.Cmd {
	parse := m.parse
	return func() tea.Msg {
		messages, err := parse()
		return parsedMsg{messages: messages, err: err}
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.focus == focusFilter && m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "tab":
		return m, m.toggleFocus()
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "pgup":
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
		return m, nil
	case "pgdown":
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
		return m, nil
	}

	if m.focus == focusList {
		switch msg.String() {
		case "k":
			m.moveCursor(-1)
		case "j":
			m.moveCursor(1)
		case "g":
			m.moveCursor(-len(m.filtered))
		case "G":
			m.moveCursor(len(m.filtered))
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "/":
			return m, m.toggleFocus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != m.lastQuery {
		return m, tea.Batch(cmd, debounceFilter())
	}
	return m, cmd
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == focusList {
		m.focus = focusFilter
		return m.filter.Focus()
	}
	m.focus = focusList
	m.filter.Blur()
	return nil
}

func (m *model) setMessages(messages []chat.Message) {
	m.items = newMessageItems(messages)
	m.lastQuery = "\x00" // force a refilter
	m.applyFilter()
}

func (m *model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == m.lastQuery {
		return
	}
	m.lastQuery = query

	words := strings.Fields(query)
	m.filtered = make([]messageItem, 0, len(m.items))
	for _, item := range m.items {
		if item.matchesQuery(words) {
			m.filtered = append(m.filtered, item)
		}
	}
	m.cursor = clamp(m.cursor, 0, len(m.filtered)-1)
	m.offset = 0
	m.refreshDetail()
}

func (m *model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.filtered)-1)
	m.refreshDetail()
}

func (m *model) selected() (messageItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return messageItem{}, false
	}
	return m.filtered[m.cursor], true
}

// ============================================================================
// Layout
// ============================================================================

func (m model) listWidth() int {
	return maxInt(24, m.width/3)
}

func (m model) bodyHeight() int {
	// title, filter and status lines plus the top and bottom border
	return maxInt(1, m.height-5)
}

func (m *model) resize() {
	m.viewport.Width = maxInt(1, m.width-m.listWidth()-4)
	m.viewport.Height = m.bodyHeight()
	m.refreshDetail()
}

func (m *model) refreshDetail() {
	item, ok := m.selected()
	if !ok {
		m.viewport.SetContent(styles.Dim.Render("no messages"))
		return
	}
	m.viewport.SetContent(renderDetail(item.msg, m.viewport.Width))
	m.viewport.GotoTop()
}

// renderDetail renders every content item of a message, separated by dividers
func renderDetail(msg chat.Message, width int) string {
	b := getBuilder()
	defer putBuilder(b)

	b.WriteString(styles.Role(msg.Role).Render(string(msg.Role)))
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d item(s)", len(msg.Content))))
	b.WriteString("\n")

	wrap := lipgloss.NewStyle().Width(maxInt(1, width))
	divider := styles.Divider.Render(strings.Repeat("─", maxInt(1, width)))
	for _, c := range msg.Content {
		b.WriteString(divider)
		b.WriteString("\n")
		if mime, data, ok := c.Image(); ok {
			b.WriteString(styles.Dim.Render(fmt.Sprintf("[image %s, %d base64 chars]", mime, len(data))))
		} else {
			b.WriteString(wrap.Render(c.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ============================================================================
// View
// ============================================================================

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	header := styles.Title.Render(m.title) +
		styles.Dim.Render(fmt.Sprintf("  %d/%d messages", len(m.filtered), len(m.items)))

	list := styles.Border.Width(m.listWidth()).Height(m.bodyHeight()).Render(m.renderList(m.bodyHeight()))
	detail := styles.Border.Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderInput(), m.renderStatus())
}

func (m *model) renderList(maxHeight int) string {
	if len(m.filtered) == 0 {
		return styles.Dim.Render("no matches")
	}

	width := m.listWidth()
	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &m.offset)

	b := getBuilder()
	defer putBuilder(b)
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor, width))
	}
	return b.String()
}

func (m model) renderListItem(item messageItem, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = styles.Cursor.Render("▶ ")
	}
	role := string(item.msg.Role)
	prefix := fmt.Sprintf("%2d ", item.index+1)
	summary := truncateString(item.summary(), maxInt(1, width-len(prefix)-len(role)-4))

	roleStyle, dim := styles.Role(item.msg.Role), styles.Dim
	if selected {
		roleStyle, dim = styles.WithSelection(roleStyle), styles.WithSelection(dim)
	}
	return cursor + dim.Render(prefix) + roleStyle.Render(role) + dim.Render(" "+summary)
}

func (m model) renderInput() string {
	if m.focus == focusFilter {
		return m.filter.View()
	}
	if v := m.filter.Value(); v != "" {
		return styles.Dim.Render("/ " + v)
	}
	return styles.Dim.Render("tab or / to filter • j/k to move • pgup/pgdown to scroll • esc to quit")
}

func (m model) renderStatus() string {
	if m.failed {
		return styles.Error.Render(m.status)
	}
	return styles.Dim.Render(m.status)
}

// ============================================================================
// Entry Point
// ============================================================================

// Run opens the message browser for a transcript. With watch set, the
// transcript is re-parsed whenever it changes on disk.
func Run(path string, parse func() ([]chat.Message, error), watch bool) error {
	RefreshStyles()

	messages, err := parse()
	if err != nil {
		return err
	}

	m := newModel(filepath.Base(path), parse, messages)
	if watch {
		fw, err := newFileWatcher(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer fw.Close()
		m.next = fw.next()
		m.status = "watching for changes"
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
