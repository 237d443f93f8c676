package service

import (
	"fmt"
	"io"
)

// WriteReport prints the human-readable service-record report the CLI
// emits on stdout.
func WriteReport(w io.Writer, result *ServiceRecordResult) {
	record := result.ServiceRecord

	fmt.Fprintln(w, "SERVICE RECORD")
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Player: %s\n", result.Player.Gamertag)
	fmt.Fprintf(w, "XUID: %s\n", result.Player.XUID)
	fmt.Fprintf(w, "Total Matches: %d\n", record.MatchesCompleted)
	fmt.Fprintf(w, "Wins: %d\n", record.Wins)
	fmt.Fprintf(w, "Losses: %d\n", record.Losses)
	fmt.Fprintf(w, "Ties: %d\n", record.Ties)
	if record.MatchesCompleted > 0 {
		winRate := float64(record.Wins) / float64(record.MatchesCompleted) * 100
		fmt.Fprintf(w, "Win Rate: %.1f%%\n", winRate)
	}
	fmt.Fprintf(w, "Time Played: %s\n", record.TimePlayed)
	fmt.Fprintln(w)

	core := record.CoreStats
	fmt.Fprintln(w, "CORE STATISTICS")
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Kills: %d\n", core.Kills)
	fmt.Fprintf(w, "Deaths: %d\n", core.Deaths)
	fmt.Fprintf(w, "Assists: %d\n", core.Assists)
	if core.Deaths > 0 {
		fmt.Fprintf(w, "K/D Ratio: %.2f\n", float64(core.Kills)/float64(core.Deaths))
	}
	if core.ShotsFired > 0 {
		accuracy := float64(core.ShotsHit) / float64(core.ShotsFired) * 100
		fmt.Fprintf(w, "Accuracy: %.1f%% (%d/%d)\n", accuracy, core.ShotsHit, core.ShotsFired)
	}
	fmt.Fprintf(w, "Damage Dealt: %d\n", core.DamageDealt)
	fmt.Fprintf(w, "Damage Taken: %d\n", core.DamageTaken)
	fmt.Fprintf(w, "Rounds Won: %d\n", core.RoundsWon)
	fmt.Fprintf(w, "Rounds Lost: %d\n", core.RoundsLost)
	fmt.Fprintf(w, "Rounds Tied: %d\n", core.RoundsTied)
	fmt.Fprintln(w)

	if pvp := record.PvpStats; pvp != nil {
		fmt.Fprintln(w, "PVP STATISTICS")
		fmt.Fprintln(w, "----------------------------------------")
		fmt.Fprintf(w, "Kills: %d\n", pvp.Kills)
		fmt.Fprintf(w, "Deaths: %d\n", pvp.Deaths)
		if pvp.Deaths > 0 {
			fmt.Fprintf(w, "PvP K/D: %.2f\n", float64(pvp.Kills)/float64(pvp.Deaths))
		}
		fmt.Fprintln(w)
	}

	if len(result.CSRData) > 0 {
		fmt.Fprintln(w, "RANKED PLAYLISTS")
		fmt.Fprintln(w, "----------------------------------------")
		for _, playlist := range RankedPlaylists {
			summary, ok := result.CSRData[playlist.Name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s:\n", playlist.Name)
			fmt.Fprintf(w, "  Current: %s\n", rankOrUnranked(summary.Current))
			fmt.Fprintf(w, "  Season Max: %s\n", rankOrUnranked(summary.SeasonMax))
			fmt.Fprintf(w, "  All-Time Max: %s\n", rankOrUnranked(summary.AllTimeMax))
		}
		fmt.Fprintln(w)
	}
}

func rankOrUnranked(summary *CSRSummary) string {
	if summary == nil {
		return "Unranked"
	}
	return summary.FormattedRank
}
