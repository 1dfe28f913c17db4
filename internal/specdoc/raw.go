package specdoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/custodia-labs/apexspec-cli/internal/markdown"
)

// RawDump renders doc followed by a Raw Data section holding each
// top-level symbol table key, in document order, with its JSON value.
func RawDump(doc *markdown.Document, symbolTable []byte) (string, error) {
	raw := markdown.New().Add(doc.Blocks()...)
	raw.H2(TitleRawData)

	err := jsonparser.ObjectEach(symbolTable, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		raw.H3(string(key))
		raw.P(jsonText(value, dataType))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("raw dump: %w", err)
	}
	return raw.String(), nil
}

// jsonText returns value as compact JSON. jsonparser hands out string
// values without their quotes.
func jsonText(value []byte, dataType jsonparser.ValueType) string {
	switch dataType {
	case jsonparser.String:
		return `"` + string(value) + `"`
	case jsonparser.Object, jsonparser.Array:
		var buf bytes.Buffer
		if err := json.Compact(&buf, value); err == nil {
			return buf.String()
		}
	}
	return string(value)
}
