package photoclient

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Endpoint paths exposed by the photo backend.
const (
	uploadPath  = "/upload"
	listPath    = "/photos/list"
	statusPath  = "/photos/status"
	convertPath = "/photos/convert/"
	displayPath = "/photos/display/"
	deletePath  = "/photos/delete/"

	uploadField = "file"
)

// maxResponseBytes caps how much of a backend body is read.
const maxResponseBytes = 4 << 20

// messageJSON is the envelope of mutating endpoints: {message} on success, {error} on failure.
type messageJSON struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
