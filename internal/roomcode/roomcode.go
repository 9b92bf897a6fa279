package roomcode

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	documentPrefix = "room_"

	lowest = 10_000_000
	span   = 90_000_000
)

var codePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{2}-[0-9]{3}$`)

// Generate - returns a random 8-digit code formatted as XXX-XX-XXX. Uniqueness is not checked.
func Generate() string {
	digits := fmt.Sprintf("%08d", lowest+rand.IntN(span)) //nolint: gosec // room codes are not secrets

	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

// Normalize - uppercases and trims user input.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func Validate(code string) bool {
	return codePattern.MatchString(Normalize(code))
}

// DocumentID - key of the room document inside the rooms collection.
func DocumentID(code string) string {
	return documentPrefix + code
}

// FromDocumentID - extracts the room code from a document id.
func FromDocumentID(id string) (string, bool) {
	code, ok := strings.CutPrefix(id, documentPrefix)
	if !ok || !Validate(code) {
		return "", false
	}

	return code, true
}
