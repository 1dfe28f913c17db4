// Package markdown is a small block model for generated Markdown documents.
//
// Documents are built from headings, paragraphs, tables, lists and code
// blocks and serialised by Render with a blank line between blocks.
package markdown
