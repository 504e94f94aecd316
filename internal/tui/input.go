package tui

import (
	"strconv"
	"unicode/utf8"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 120

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// editDigits is editRune restricted to decimal digits, for numeric fields.
func editDigits(text string, key string) string {
	if key != "backspace" {
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return text
		}
	}
	return editRune(text, key)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// renderDateField shows a date input normalized as the user types, so
// "20260115" and "2026-0115" both display as 2026-01-15 once complete.
func renderDateField(raw string, focused bool) string {
	shown := domain.NormalizeDate(raw)
	if focused {
		shown += "█"
	}
	if raw == "" && !focused {
		return inputPlaceholderStyle.Render("YYYY-MM-DD")
	}
	return shown
}

// parseUint parses a decimal field, returning 0 for empty input.
func parseUint(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
