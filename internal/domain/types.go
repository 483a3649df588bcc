package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type Item struct {
	ID          int64
	Content     string
	DateCreated time.Time
}

// MaxContentLen is the maximum number of characters in trimmed item content.
const MaxContentLen = 200

const (
	MsgContentEmpty   = "Item content cannot be empty."
	MsgContentTooLong = "Item content exceeds 200 characters."
)

// ValidateContent reports whether content may be stored as an item. On
// failure message holds the user-facing reason.
func ValidateContent(content string) (ok bool, message string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false, MsgContentEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxContentLen {
		return false, MsgContentTooLong
	}
	return true, ""
}
