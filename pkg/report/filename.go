package report

import "strings"

var filenameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	`"`, "'",
	"<", "(",
	">", ")",
	"|", "-",
)

// SafeFilename replaces characters illegal in cross-platform filenames.
func SafeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
