package ui

import (
	"strings"
	"sync"
)

// ============================================================================
// String Builder Pool - reduces GC pressure from rendering
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// firstLine returns the first line of a string
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// scrollWindow calculates the visible range for a scrollable list
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	*offset = clamp(*offset, 0, max(0, total-height))

	start = *offset
	end = min(start+height, total)
	return
}

// truncateString truncates a string to maxLen runes with ellipsis
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 3 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
