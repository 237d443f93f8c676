package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ChaseWoodhams/SPNKr/internal/api"
)

// Sub-tiers are zero-based on the wire; displayed ranks use roman
// numerals I through VI.
var subTierNumerals = map[int]string{
	0: "I",
	1: "II",
	2: "III",
	3: "IV",
	4: "V",
	5: "VI",
}

// FormatCSRContainer flattens a CSR container for serialization. A nil
// container stays nil in the output, matching the null the skill
// service reports for unreached snapshots.
func FormatCSRContainer(c *api.CSRContainer) *CSRSummary {
	if c == nil {
		return nil
	}
	return &CSRSummary{
		Value:                       c.Value,
		Tier:                        c.Tier,
		SubTier:                     c.SubTier,
		TierStart:                   c.TierStart,
		NextTier:                    c.NextTier,
		NextTierStart:               c.NextTierStart,
		MeasurementMatchesRemaining: c.MeasurementMatchesRemaining,
		FormattedRank:               FormatRankDisplay(c),
	}
}

// FormatRankDisplay renders the human-readable rank, e.g.
// "Diamond IV - 1250 CSR". Onyx has no sub-tiers. A sub-tier outside
// the mapped range falls back to its one-based decimal form.
func FormatRankDisplay(c *api.CSRContainer) string {
	if c == nil {
		return "Unranked"
	}

	if strings.EqualFold(c.Tier, "Onyx") {
		return fmt.Sprintf("Onyx - %d CSR", c.Value)
	}

	numeral, ok := subTierNumerals[c.SubTier]
	if !ok {
		numeral = strconv.Itoa(c.SubTier + 1)
	}
	return fmt.Sprintf("%s %s - %d CSR", c.Tier, numeral, c.Value)
}
