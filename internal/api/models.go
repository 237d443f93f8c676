package api

// User is the profile-service view of a player.
type User struct {
	XUID     string `json:"xuid"`
	Gamertag string `json:"gamertag"`
	Gamerpic struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Large  string `json:"large"`
		XLarge string `json:"xlarge"`
	} `json:"gamerpic"`
}

// ServiceRecord is the aggregate matchmade record. TimePlayed is an
// ISO8601 duration string and is passed through untouched.
type ServiceRecord struct {
	MatchesCompleted int        `json:"MatchesCompleted"`
	Wins             int        `json:"Wins"`
	Losses           int        `json:"Losses"`
	Ties             int        `json:"Ties"`
	TimePlayed       string     `json:"TimePlayed"`
	CoreStats        CoreStats  `json:"CoreStats"`
	PvpStats         *CoreStats `json:"PvpStats"`
}

type CoreStats struct {
	Kills       int     `json:"Kills"`
	Deaths      int     `json:"Deaths"`
	Assists     int     `json:"Assists"`
	ShotsFired  int     `json:"ShotsFired"`
	ShotsHit    int     `json:"ShotsHit"`
	DamageDealt int     `json:"DamageDealt"`
	DamageTaken int     `json:"DamageTaken"`
	RoundsWon   int     `json:"RoundsWon"`
	RoundsLost  int     `json:"RoundsLost"`
	RoundsTied  int     `json:"RoundsTied"`
	Accuracy    float64 `json:"Accuracy"`
}

type PlaylistCSRResponse struct {
	Value []PlayerCSR `json:"Value"`
}

type PlayerCSR struct {
	ID         string     `json:"Id"`
	ResultCode int        `json:"ResultCode"`
	Result     *CSRResult `json:"Result"`
}

// CSRResult holds the three snapshots the skill service reports per
// playlist. A snapshot the player never reached is null on the wire.
type CSRResult struct {
	Current    *CSRContainer `json:"Current"`
	SeasonMax  *CSRContainer `json:"SeasonMax"`
	AllTimeMax *CSRContainer `json:"AllTimeMax"`
}

type CSRContainer struct {
	Value                       int    `json:"Value"`
	Tier                        string `json:"Tier"`
	SubTier                     int    `json:"SubTier"`
	TierStart                   int    `json:"TierStart"`
	NextTier                    string `json:"NextTier"`
	NextTierStart               int    `json:"NextTierStart"`
	MeasurementMatchesRemaining int    `json:"MeasurementMatchesRemaining"`
}
