// Package identity provides the anonymous pseudo-identity a client uses to
// attribute its comments, ratings and likes.
package identity

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// IDPrefix starts every generated user id.
const IDPrefix = "user-"

var namePrefixes = []string{"GameMaster", "BoardGameFan", "DiceRoller", "CardShark", "MeepleCollector"}

// Identity is a locally generated, unauthenticated user identity.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// New generates a fresh identity.
func New() Identity {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Identity{
		UserID:   IDPrefix + id[:9],
		Username: fmt.Sprintf("%s%d", namePrefixes[rand.Intn(len(namePrefixes))], rand.Intn(1000)),
	}
}

// Valid reports whether both fields are populated.
func (i Identity) Valid() bool {
	return strings.HasPrefix(i.UserID, IDPrefix) && len(i.UserID) > len(IDPrefix) && strings.TrimSpace(i.Username) != ""
}

// DisplayName returns name if it is not blank, otherwise the identity's username.
func (i Identity) DisplayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return i.Username
}
