package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeading(t *testing.T) {
	assert.Equal(t, "## Methods", Heading{Level: 2, Text: "Methods"}.Markdown())
	assert.Equal(t, "# Low", Heading{Level: 0, Text: "Low"}.Markdown())
	assert.Equal(t, "###### Deep", Heading{Level: 9, Text: "Deep"}.Markdown())
}

func TestTable(t *testing.T) {
	table := Table{
		Headers: []string{"Name", "Type"},
		Rows: [][]string{
			{"a|b", "Integer"},
			{"short"},
		},
	}

	want := "| Name | Type |\n" +
		"| --- | --- |\n" +
		"| a\\|b | Integer |\n" +
		"| short |  |"
	assert.Equal(t, want, table.Markdown())
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Equal(t, "", Table{}.Markdown())
}

func TestCode(t *testing.T) {
	assert.Equal(t, "```java\nvoid a();\n```", Code{Language: "java", Content: "void a();\n"}.Markdown())
	assert.Equal(t, "````\nx ``` y\n````", Code{Content: "x ``` y"}.Markdown())
}

func TestList(t *testing.T) {
	assert.Equal(t, "- one\n- two", List{Items: []string{"one", "two"}}.Markdown())
	assert.Equal(t, "", List{}.Markdown())
}

func TestRender_SkipsEmptyBlocks(t *testing.T) {
	doc := New().
		H1("Account.cls").
		P("").
		P("N/A").
		UL(nil).
		Code("java", "class A {}")

	want := "# Account.cls\n\nN/A\n\n```java\nclass A {}\n```\n"
	assert.Equal(t, want, doc.String())
	assert.Len(t, doc.Blocks(), 5)
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
	assert.Equal(t, "", Render([]Block{nil, Paragraph{}}))
}

func TestDocument_BlocksIsCopy(t *testing.T) {
	doc := New().H2("Methods")
	blocks := doc.Blocks()
	blocks[0] = Paragraph{Text: "changed"}

	assert.Equal(t, Heading{Level: 2, Text: "Methods"}, doc.Blocks()[0])
}
