package certificate

import (
	"strings"
	"unicode"
)

// FilenameSuffix is appended to every downloaded certificate name.
const FilenameSuffix = "_LinkedIn_Seminar_Certificate.jpg"

// DownloadFilename builds the attachment name from the user's name, dropping
// path separators, reserved characters and control characters.
func DownloadFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsControl(r):
		case strings.ContainsRune(`/\:*?"<>|`, r):
		default:
			b.WriteRune(r)
		}
	}
	base := strings.Trim(strings.Join(strings.Fields(b.String()), " "), ".")
	if base == "" {
		base = "certificate"
	}
	return base + FilenameSuffix
}
