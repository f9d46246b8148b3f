package forum

import (
	"crypto/rand"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// codeAlphabet omits glyphs that read ambiguously when shared aloud or
// hand-copied: I, L, O, 0 and 1.
const (
	codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	codeLength   = 8
)

var codeRe = regexp.MustCompile(`^[` + codeAlphabet + `]{8}$`)

// NewRoomCode generates an 8-character room code.
func NewRoomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("forum: generate room code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// ValidRoomCode reports whether s is a well-formed room code.
func ValidRoomCode(s string) bool {
	return codeRe.MatchString(s)
}

// ShareLink encodes the room code so pasting the link reproduces the room.
func ShareLink(code string) string {
	return "studylog://room?code=" + url.QueryEscape(code)
}

// ParseShareLink extracts the room code from a share link or accepts a bare
// code. Input is uppercased before validation.
func ParseShareLink(s string) (string, error) {
	s = strings.TrimSpace(s)

	if u, err := url.Parse(s); err == nil && u.Scheme == "studylog" {
		s = u.Query().Get("code")
	}

	code := strings.ToUpper(s)
	if !ValidRoomCode(code) {
		return "", fmt.Errorf("forum: invalid room code %q", s)
	}
	return code, nil
}
