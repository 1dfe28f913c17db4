package markdown

import (
	"strings"
)

// Block is one top-level element of a document.
type Block interface {
	// Markdown returns the block text without a trailing newline.
	// An empty result means the block is omitted.
	Markdown() string
}

// Heading is an ATX heading of level 1 to 6.
type Heading struct {
	Level int
	Text  string
}

// Markdown implements Block.
func (h Heading) Markdown() string {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + h.Text
}

// Paragraph is a block of inline text. Empty paragraphs are omitted.
type Paragraph struct {
	Text string
}

// Markdown implements Block.
func (p Paragraph) Markdown() string {
	return strings.TrimSpace(p.Text)
}

// Table is a pipe table. Rows shorter than Headers are padded.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Markdown implements Block.
func (t Table) Markdown() string {
	if len(t.Headers) == 0 {
		return ""
	}

	var b strings.Builder
	writeRow(&b, t.Headers, len(t.Headers))
	b.WriteByte('\n')

	sep := make([]string, len(t.Headers))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep, len(sep))

	for _, row := range t.Rows {
		b.WriteByte('\n')
		writeRow(&b, row, len(t.Headers))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = escapeCell(cells[i])
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// escapeCell keeps a cell on one line and escapes column separators.
func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}

// List is an unordered list. Empty lists are omitted.
type List struct {
	Items []string
}

// Markdown implements Block.
func (l List) Markdown() string {
	lines := make([]string, len(l.Items))
	for i, item := range l.Items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// Code is a fenced code block.
type Code struct {
	Language string
	Content  string
}

// Markdown implements Block.
func (c Code) Markdown() string {
	fence := "```"
	for strings.Contains(c.Content, fence) {
		fence += "`"
	}
	return fence + c.Language + "\n" + strings.TrimRight(c.Content, "\n") + "\n" + fence
}

// Render serialises blocks separated by blank lines, ending with a newline.
func Render(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block == nil {
			continue
		}
		if text := block.Markdown(); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
