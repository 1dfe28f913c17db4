package markdown

// Document accumulates blocks in order.
type Document struct {
	blocks []Block
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// H1 appends a level 1 heading.
func (d *Document) H1(text string) *Document { return d.Add(Heading{Level: 1, Text: text}) }

// H2 appends a level 2 heading.
func (d *Document) H2(text string) *Document { return d.Add(Heading{Level: 2, Text: text}) }

// H3 appends a level 3 heading.
func (d *Document) H3(text string) *Document { return d.Add(Heading{Level: 3, Text: text}) }

// H4 appends a level 4 heading.
func (d *Document) H4(text string) *Document { return d.Add(Heading{Level: 4, Text: text}) }

// P appends a paragraph.
func (d *Document) P(text string) *Document { return d.Add(Paragraph{Text: text}) }

// Table appends a table.
func (d *Document) Table(headers []string, rows [][]string) *Document {
	return d.Add(Table{Headers: headers, Rows: rows})
}

// UL appends an unordered list.
func (d *Document) UL(items []string) *Document { return d.Add(List{Items: items}) }

// Code appends a fenced code block.
func (d *Document) Code(language, content string) *Document {
	return d.Add(Code{Language: language, Content: content})
}

// Add appends any block.
func (d *Document) Add(blocks ...Block) *Document {
	d.blocks = append(d.blocks, blocks...)
	return d
}

// Blocks returns a copy of the blocks in order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// String renders the document.
func (d *Document) String() string {
	return Render(d.blocks)
}
