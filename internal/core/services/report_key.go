package services

import (
	"path"
	"strings"
)

const (
	reportFolder = "audits/"
	reportSuffix = ".json"
)

// Audio extensions the analysis pipeline strips when naming its output.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

// ReportKey derives the report store key for an uploaded object. The
// derivation is pure and total: the same sourceFileName always yields the
// same key, for every input. A recognized audio extension is replaced by the
// report suffix; any other name keeps its extension and gains the suffix.
func ReportKey(sourceFileName string) string {
	base := path.Base(sourceFileName)
	ext := path.Ext(base)
	if _, ok := audioExtensions[strings.ToLower(ext)]; ok {
		base = strings.TrimSuffix(base, ext)
	}
	return reportFolder + base + reportSuffix
}
