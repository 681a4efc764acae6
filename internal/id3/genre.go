package id3

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveGenre turns the content of a TCON frame into a genre name.
//
// Accepted forms:
//
//	""             -> "" (no genre)
//	"Rock"         -> "Rock"
//	"(17"          -> "(17" (unterminated reference, kept as text)
//	"(17)"         -> Genre(17)
//	"(17)Rocking"  -> "Rocking"
//
// A "(NN)" reference with non-digit content or an index outside the table
// returns an error.
func ResolveGenre(content string) (string, error) {
	if content == "" {
		return "", nil
	}
	if content[0] != '(' {
		return content, nil
	}

	closing := strings.IndexByte(content, ')')
	if closing < 0 {
		return content, nil
	}

	if closing == len(content)-1 {
		digits := content[1:closing]
		index, err := strconv.Atoi(digits)
		if err != nil || strings.ContainsAny(digits, "+-") {
			return "", fmt.Errorf("genre reference %q: not a number", content)
		}
		return Genre(index)
	}

	return content[closing+1:], nil
}
