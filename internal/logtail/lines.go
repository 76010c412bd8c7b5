package logtail

import "strings"

// maxPending bounds the unterminated fragment carried between chunks. A
// fragment that grows past it is released as a line of its own.
const maxPending = 64 * 1024

// LineBuffer splits chunk text into complete lines, holding back a trailing
// fragment until its newline arrives.
type LineBuffer struct {
	pending string
}

// Feed appends text and returns every line completed by it, without line
// terminators. Invalid UTF-8 is replaced with U+FFFD.
func (b *LineBuffer) Feed(text string) []string {
	if text == "" {
		return nil
	}
	data := b.pending + text
	b.pending = ""

	parts := strings.Split(data, "\n")
	last := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	if len(last) > maxPending {
		parts = append(parts, last)
	} else {
		b.pending = last
	}

	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, strings.ToValidUTF8(strings.TrimSuffix(p, "\r"), "\uFFFD"))
	}
	return lines
}

// Pending returns the fragment waiting for a newline.
func (b *LineBuffer) Pending() string {
	return b.pending
}

// Reset drops any pending fragment.
func (b *LineBuffer) Reset() {
	b.pending = ""
}
