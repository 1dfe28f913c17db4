package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

// Archive layout, relative to the archive and output roots.
const (
	recordsFile    = "records.json"
	symbolTableDir = "symbol-table"
	rawDataDir     = "raw-data"
	logDir         = "log"
	jsonExt        = ".json"
	markdownExt    = ".md"
	rawDataExt     = ".raw.md"
)

func recordsPath(kind domain.ApexKind) string {
	return path.Join(kind.Dir(), recordsFile)
}

func symbolTablesPath(kind domain.ApexKind) string {
	return path.Join(kind.Dir(), symbolTableDir)
}

func symbolTablePath(kind domain.ApexKind, name string) string {
	return path.Join(symbolTablesPath(kind), name+jsonExt)
}

func rawDataPath(kind domain.ApexKind, name string) string {
	return path.Join(kind.Dir(), rawDataDir, name+rawDataExt)
}

func documentPath(kind domain.ApexKind, name string) string {
	return path.Join(kind.Dir(), name+markdownExt)
}

// logPath names the raw response of one step of one batch,
// e.g. class/log/batch-002-poll-004.json.
func logPath(kind domain.ApexKind, batch int, step string) string {
	return path.Join(kind.Dir(), logDir, fmt.Sprintf("batch-%03d-%s%s", batch, step, jsonExt))
}

// memberName is the member a symbol table file belongs to.
func memberName(file string) (string, bool) {
	if !strings.HasSuffix(file, jsonExt) {
		return "", false
	}
	return strings.TrimSuffix(file, jsonExt), true
}

// prettyJSON indents body for archiving. Invalid JSON is kept as is.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	buf.WriteByte('\n')
	return buf.String()
}
