package service

// ServiceRecordResult is the response document shared by the CLI and
// the web API. Field names are part of the wire contract consumed by
// the bundled page.
type ServiceRecordResult struct {
	Player        PlayerInfo                    `json:"player"`
	ServiceRecord ServiceRecordSummary          `json:"service_record"`
	CSRData       map[string]PlaylistCSRSummary `json:"csr_data"`
}

type PlayerInfo struct {
	Gamertag string `json:"gamertag"`
	XUID     string `json:"xuid"`
}

type ServiceRecordSummary struct {
	MatchesCompleted int              `json:"matches_completed"`
	Wins             int              `json:"wins"`
	Losses           int              `json:"losses"`
	Ties             int              `json:"ties"`
	TimePlayed       string           `json:"time_played"`
	CoreStats        CoreStatsSummary `json:"core_stats"`
	PvpStats         *PvpStatsSummary `json:"pvp_stats"`
}

type CoreStatsSummary struct {
	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
	Assists     int `json:"assists"`
	ShotsFired  int `json:"shots_fired"`
	ShotsHit    int `json:"shots_hit"`
	DamageDealt int `json:"damage_dealt"`
	DamageTaken int `json:"damage_taken"`
	RoundsWon   int `json:"rounds_won"`
	RoundsLost  int `json:"rounds_lost"`
	RoundsTied  int `json:"rounds_tied"`
}

type PvpStatsSummary struct {
	Kills  int `json:"kills"`
	Deaths int `json:"deaths"`
}

// PlaylistCSRSummary groups the three CSR snapshots for one playlist.
// A snapshot the player never reached stays null.
type PlaylistCSRSummary struct {
	Current    *CSRSummary `json:"current"`
	SeasonMax  *CSRSummary `json:"season_max"`
	AllTimeMax *CSRSummary `json:"all_time_max"`
}

type CSRSummary struct {
	Value                       int    `json:"value"`
	Tier                        string `json:"tier"`
	SubTier                     int    `json:"sub_tier"`
	TierStart                   int    `json:"tier_start"`
	NextTier                    string `json:"next_tier"`
	NextTierStart               int    `json:"next_tier_start"`
	MeasurementMatchesRemaining int    `json:"measurement_matches_remaining"`
	FormattedRank               string `json:"formatted_rank"`
}
