package web

import "strings"

var unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "")

// sanitize strips <, > and " from text echoed into a page. Stored content is
// never altered.
func sanitize(value string) string {
	return unsafeChars.Replace(value)
}
