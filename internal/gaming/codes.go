package gaming

import (
	"math/rand"
	"strconv"
)

// InvitationCodeLength - invitation codes are numeric strings of this length.
const InvitationCodeLength = 6

// NewInvitationCode - draws a 6-digit numeric code from the supplied source.
// Uniqueness among live sessions is the manager's responsibility.
func NewInvitationCode(rng *rand.Rand) string {
	return strconv.Itoa(100_000 + rng.Intn(900_000))
}
