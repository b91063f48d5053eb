package lister

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MrWong99/voicelist/pkg/voice"
)

// Column widths, in bytes.
const (
	nameWidth   = 10
	ageWidth    = 3
	localeWidth = 8
)

// genderPrefix is the common prefix of the AppKit gender constants
// ("VoiceGenderFemale", "VoiceGenderMale", "VoiceGenderNeuter").
const genderPrefix = "VoiceGender"

// padRight appends spaces to s until it is at least width bytes long.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft prepends spaces to s until it is at least width bytes long.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// genderLetter returns the first character of the gender word.
func genderLetter(gender string) string {
	word := strings.TrimPrefix(gender, genderPrefix)
	_, size := utf8.DecodeRuneInString(word)
	return word[:size]
}

// Detailed reports whether v qualifies for the detailed block at threshold.
// The score must be present, parse, and reach the threshold.
func Detailed(v voice.Voice, threshold int) bool {
	return v.Desirability.Present() && v.Desirability.Parsed() && v.Desirability.Value() >= threshold
}

// Format renders v as output lines, without trailing newlines. A detailed
// voice yields four lines, every other voice two; the last line is always
// empty.
func Format(v voice.Voice, threshold int) []string {
	name := padRight(v.Name, nameWidth)
	score := strconv.Itoa(v.Desirability.Value())

	if !Detailed(v, threshold) {
		return []string{name + ": " + score, ""}
	}
	return []string{
		v.Identifier,
		" -> " + strings.Join([]string{
			name,
			genderLetter(v.Gender),
			padLeft(v.Age, ageWidth),
			padRight(v.Locale, localeWidth),
		}, "\t"),
		" ->" + score,
		"",
	}
}
