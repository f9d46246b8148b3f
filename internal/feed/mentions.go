package feed

import (
	"regexp"
	"strings"

	"github.com/RugvedaRao/StudyLog/internal/constants"
)

// A mention is "@" followed by 1-24 word or dot characters. Matching is done
// against raw text; whether the handle names a known member is irrelevant.
var mentionRe = regexp.MustCompile(`@([0-9A-Za-z_.]{1,24})`)

func isMentionChar(r rune) bool {
	return r == '.' || r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z')
}

// ExtractMentions returns the lowercased handles mentioned in text,
// deduplicated case-insensitively, in order of first occurrence.
func ExtractMentions(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var handles []string
	for _, m := range matches {
		handle := strings.ToLower(m[1])
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}
	return handles
}

// QueryAt reports the active mention query when the caret sits immediately
// after an "@"-prefixed token with no intervening whitespace. caret and the
// returned start are rune offsets, matching how textinput reports its cursor,
// so the text before the caret may hold multi-byte characters.
func QueryAt(text string, caret int) (query string, start int, ok bool) {
	runes := []rune(text)
	if caret < 1 || caret > len(runes) {
		return "", 0, false
	}

	// Walk back over token characters to the "@".
	i := caret
	for i > 0 && isMentionChar(runes[i-1]) {
		i--
	}
	if i == 0 || runes[i-1] != '@' {
		return "", 0, false
	}

	// The "@" must begin a token, not sit mid-word.
	at := i - 1
	if at > 0 && isMentionChar(runes[at-1]) {
		return "", 0, false
	}

	if caret-i > 24 {
		return "", 0, false
	}
	return string(runes[i:caret]), at, true
}

// Candidates filters member names by case-insensitive substring match on
// their space-stripped form, capped to the dropdown limit.
func Candidates(members []string, query string) []string {
	normalized := normalizeHandle(query)

	var out []string
	for _, name := range members {
		if strings.Contains(normalizeHandle(name), normalized) {
			out = append(out, name)
			if len(out) == constants.MaxMentionCandidates {
				break
			}
		}
	}
	return out
}

// Complete replaces the active mention token with "@" + the chosen name
// (spaces stripped) and a trailing space, returning the new text and caret
// position. Like QueryAt, both carets are rune offsets. Text is unchanged
// when no mention query is active.
func Complete(text string, caret int, name string) (string, int) {
	_, start, ok := QueryAt(text, caret)
	if !ok {
		return text, caret
	}

	runes := []rune(text)
	inserted := []rune("@" + strings.ReplaceAll(name, " ", "") + " ")
	out := string(runes[:start]) + string(inserted) + string(runes[caret:])
	return out, start + len(inserted)
}

func normalizeHandle(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
