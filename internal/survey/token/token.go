// Package token generates resume tokens: opaque, URL-safe handles that let a
// respondent return to an in-progress response without authentication.
package token

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New returns a fresh resume token. The token mixes 122 bits of UUID
// randomness with a millisecond clock reading, so collisions within a process
// lifetime are vanishingly unlikely and the token reveals nothing about the
// internal response ID. Only URL-safe characters are used; callers embed the
// token verbatim in resume links.
func New() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "tok_" + random + "_" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
