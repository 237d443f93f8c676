package auth

import (
	"time"

	"github.com/ChaseWoodhams/SPNKr/internal/constants"
)

// TokenSet carries everything the Halo Infinite endpoints need for one
// authenticated player: the spartan and clearance bearer tokens plus
// the identity resolved during the Xbox Live leg of the chain.
type TokenSet struct {
	SpartanToken   string
	ClearanceToken string
	Gamertag       string
	XUID           string
	Expiry         time.Time
}

// Valid reports whether the set still has enough life left to be
// handed to a request. The margin keeps a token from expiring mid
// call-sequence.
func (t *TokenSet) Valid(now time.Time) bool {
	if t == nil || t.SpartanToken == "" {
		return false
	}
	return now.Add(constants.TokenExpiryMargin).Before(t.Expiry)
}
