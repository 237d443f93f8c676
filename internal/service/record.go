package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChaseWoodhams/SPNKr/internal/api"
	"github.com/ChaseWoodhams/SPNKr/internal/constants"
	"github.com/rs/zerolog"
)

// RankedPlaylist pairs a stable output key with the matchmaking
// playlist asset id it maps to.
type RankedPlaylist struct {
	Name string
	ID   string
}

// Playlist ids are point-in-time matchmaking configuration; a retired
// id simply yields nothing and is skipped like any other per-playlist
// failure.
var RankedPlaylists = []RankedPlaylist{
	{Name: "ranked_arena", ID: "edfef3ac-9cbe-4fa2-b949-8f29deafd483"},
	{Name: "ranked_slayer", ID: "f7f30787-f607-436b-bdec-44c65bc2ecef"},
	{Name: "ranked_crossplay", ID: "c98949c6-f018-4e54-9243-a5b9c0246da2"},
}

// HaloAPI is the slice of the stats client the record service needs.
type HaloAPI interface {
	GetUserByGamertag(ctx context.Context, gamertag string) (*api.User, error)
	GetServiceRecord(ctx context.Context, xuid string) (*api.ServiceRecord, error)
	GetPlaylistCSR(ctx context.Context, playlistID string, xuids []string) (*api.PlaylistCSRResponse, error)
}

type RecordService struct {
	halo      HaloAPI
	playlists []RankedPlaylist
	logger    zerolog.Logger
}

func NewRecordService(halo HaloAPI, logger zerolog.Logger) *RecordService {
	return &RecordService{halo: halo, playlists: RankedPlaylists, logger: logger}
}

// GetServiceRecord resolves the gamertag, fetches the matchmade
// service record and the ranked CSR snapshots, and merges them into
// one document. A playlist whose CSR fetch fails is logged and
// omitted; the record itself still succeeds.
func (s *RecordService) GetServiceRecord(ctx context.Context, gamertag string) (*ServiceRecordResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	gamertag = strings.TrimSpace(gamertag)
	if gamertag == "" {
		return nil, fmt.Errorf("gamertag cannot be empty")
	}

	s.logger.Info().Str("gamertag", gamertag).Msg("getting service record")

	user, err := s.halo.GetUserByGamertag(ctx, gamertag)
	if err != nil {
		s.logger.Error().Err(err).Str("gamertag", gamertag).Msg("failed to look up player")
		return nil, fmt.Errorf("failed to get service record: %w", err)
	}

	record, err := s.halo.GetServiceRecord(ctx, user.XUID)
	if err != nil {
		s.logger.Error().Err(err).Str("xuid", user.XUID).Msg("failed to fetch service record")
		return nil, fmt.Errorf("failed to get service record: %w", err)
	}

	result := &ServiceRecordResult{
		Player: PlayerInfo{
			Gamertag: user.Gamertag,
			XUID:     user.XUID,
		},
		ServiceRecord: ServiceRecordSummary{
			MatchesCompleted: record.MatchesCompleted,
			Wins:             record.Wins,
			Losses:           record.Losses,
			Ties:             record.Ties,
			TimePlayed:       record.TimePlayed,
			CoreStats:        toCoreStatsSummary(record.CoreStats),
		},
		CSRData: s.getCSRData(ctx, user.XUID),
	}

	if record.PvpStats != nil {
		result.ServiceRecord.PvpStats = &PvpStatsSummary{
			Kills:  record.PvpStats.Kills,
			Deaths: record.PvpStats.Deaths,
		}
	}

	s.logger.Info().
		Str("gamertag", user.Gamertag).
		Int("matches_completed", record.MatchesCompleted).
		Int("csr_playlists", len(result.CSRData)).
		Msg("service record retrieved")
	return result, nil
}

// getCSRData fetches CSR snapshots for each ranked playlist in turn.
// Partial success is the designed behavior: a failed playlist is
// skipped, never fatal.
func (s *RecordService) getCSRData(ctx context.Context, xuid string) map[string]PlaylistCSRSummary {
	csrData := make(map[string]PlaylistCSRSummary)

	for _, playlist := range s.playlists {
		resp, err := s.halo.GetPlaylistCSR(ctx, playlist.ID, []string{xuid})
		if err != nil {
			s.logger.Warn().Err(err).Str("playlist", playlist.Name).Msg("could not get CSR, skipping playlist")
			continue
		}
		if len(resp.Value) == 0 || resp.Value[0].Result == nil {
			s.logger.Warn().Str("playlist", playlist.Name).Msg("no CSR result for player, skipping playlist")
			continue
		}

		result := resp.Value[0].Result
		csrData[playlist.Name] = PlaylistCSRSummary{
			Current:    FormatCSRContainer(result.Current),
			SeasonMax:  FormatCSRContainer(result.SeasonMax),
			AllTimeMax: FormatCSRContainer(result.AllTimeMax),
		}
	}

	return csrData
}

func toCoreStatsSummary(stats api.CoreStats) CoreStatsSummary {
	return CoreStatsSummary{
		Kills:       stats.Kills,
		Deaths:      stats.Deaths,
		Assists:     stats.Assists,
		ShotsFired:  stats.ShotsFired,
		ShotsHit:    stats.ShotsHit,
		DamageDealt: stats.DamageDealt,
		DamageTaken: stats.DamageTaken,
		RoundsWon:   stats.RoundsWon,
		RoundsLost:  stats.RoundsLost,
		RoundsTied:  stats.RoundsTied,
	}
}
