package service

import (
	"testing"

	"github.com/ChaseWoodhams/SPNKr/internal/api"
)

func TestFormatRankDisplay(t *testing.T) {
	t.Run("Onyx", func(t *testing.T) {
		c := &api.CSRContainer{Tier: "Onyx", SubTier: 0, Value: 1523}
		if got := FormatRankDisplay(c); got != "Onyx - 1523 CSR" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("OnyxCaseInsensitive", func(t *testing.T) {
		c := &api.CSRContainer{Tier: "onyx", SubTier: 3, Value: 1501}
		if got := FormatRankDisplay(c); got != "Onyx - 1501 CSR" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("SubTierNumerals", func(t *testing.T) {
		numerals := []string{"I", "II", "III", "IV", "V", "VI"}
		for subTier, numeral := range numerals {
			c := &api.CSRContainer{Tier: "Diamond", SubTier: subTier, Value: 1250}
			want := "Diamond " + numeral + " - 1250 CSR"
			if got := FormatRankDisplay(c); got != want {
				t.Errorf("sub-tier %d: got %q, want %q", subTier, got, want)
			}
		}
	})

	t.Run("OutOfRangeSubTier", func(t *testing.T) {
		c := &api.CSRContainer{Tier: "Platinum", SubTier: 6, Value: 1100}
		if got := FormatRankDisplay(c); got != "Platinum 7 - 1100 CSR" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("NilContainer", func(t *testing.T) {
		if got := FormatRankDisplay(nil); got != "Unranked" {
			t.Errorf("got %q", got)
		}
	})
}

func TestFormatCSRContainer(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		if got := FormatCSRContainer(nil); got != nil {
			t.Errorf("nil container should format to nil, got %+v", got)
		}
	})

	t.Run("AllFields", func(t *testing.T) {
		c := &api.CSRContainer{
			Value:                       1250,
			Tier:                        "Diamond",
			SubTier:                     3,
			TierStart:                   1200,
			NextTier:                    "Diamond",
			NextTierStart:               1300,
			MeasurementMatchesRemaining: 0,
		}
		got := FormatCSRContainer(c)
		if got.Value != 1250 || got.Tier != "Diamond" || got.SubTier != 3 {
			t.Errorf("fields not carried over: %+v", got)
		}
		if got.TierStart != 1200 || got.NextTier != "Diamond" || got.NextTierStart != 1300 {
			t.Errorf("threshold fields not carried over: %+v", got)
		}
		if got.FormattedRank != "Diamond IV - 1250 CSR" {
			t.Errorf("got formatted rank %q", got.FormattedRank)
		}
	})

	t.Run("PlacementMatches", func(t *testing.T) {
		c := &api.CSRContainer{Value: -1, Tier: "Bronze", MeasurementMatchesRemaining: 5}
		got := FormatCSRContainer(c)
		if got.MeasurementMatchesRemaining != 5 {
			t.Errorf("got %d placement matches", got.MeasurementMatchesRemaining)
		}
	})
}
