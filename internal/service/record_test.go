package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ChaseWoodhams/SPNKr/internal/api"
	"github.com/rs/zerolog"
)

type fakeHaloAPI struct {
	user          *api.User
	userErr       error
	record        *api.ServiceRecord
	recordErr     error
	csr           map[string]*api.PlaylistCSRResponse
	csrErr        map[string]error
	csrCalls      []string
	recordedXUIDs []string
}

func (f *fakeHaloAPI) GetUserByGamertag(ctx context.Context, gamertag string) (*api.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeHaloAPI) GetServiceRecord(ctx context.Context, xuid string) (*api.ServiceRecord, error) {
	f.recordedXUIDs = append(f.recordedXUIDs, xuid)
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return f.record, nil
}

func (f *fakeHaloAPI) GetPlaylistCSR(ctx context.Context, playlistID string, xuids []string) (*api.PlaylistCSRResponse, error) {
	f.csrCalls = append(f.csrCalls, playlistID)
	if err, ok := f.csrErr[playlistID]; ok {
		return nil, err
	}
	if resp, ok := f.csr[playlistID]; ok {
		return resp, nil
	}
	return &api.PlaylistCSRResponse{}, nil
}

func csrResponse(tier string, subTier, value int) *api.PlaylistCSRResponse {
	container := &api.CSRContainer{Tier: tier, SubTier: subTier, Value: value}
	return &api.PlaylistCSRResponse{
		Value: []api.PlayerCSR{{
			ID:     "xuid(2535445291321133)",
			Result: &api.CSRResult{Current: container, SeasonMax: container, AllTimeMax: container},
		}},
	}
}

func newFake() *fakeHaloAPI {
	return &fakeHaloAPI{
		user: &api.User{XUID: "2535445291321133", Gamertag: "itsmrpixle"},
		record: &api.ServiceRecord{
			MatchesCompleted: 100,
			Wins:             60,
			Losses:           38,
			Ties:             2,
			TimePlayed:       "PT100H30M",
			CoreStats:        api.CoreStats{Kills: 1500, Deaths: 1200, Assists: 400},
		},
		csr:    map[string]*api.PlaylistCSRResponse{},
		csrErr: map[string]error{},
	}
}

func TestGetServiceRecord(t *testing.T) {
	t.Run("MergesPlayerRecordAndCSR", func(t *testing.T) {
		fake := newFake()
		for _, p := range RankedPlaylists {
			fake.csr[p.ID] = csrResponse("Diamond", 2, 1250)
		}

		svc := NewRecordService(fake, zerolog.Nop())
		result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("GetServiceRecord: %v", err)
		}

		if result.Player.Gamertag != "itsmrpixle" || result.Player.XUID != "2535445291321133" {
			t.Errorf("unexpected player info: %+v", result.Player)
		}
		if result.ServiceRecord.MatchesCompleted != 100 {
			t.Errorf("unexpected matches completed: %d", result.ServiceRecord.MatchesCompleted)
		}
		if len(result.CSRData) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(result.CSRData))
		}
		arena := result.CSRData["ranked_arena"]
		if arena.Current == nil || arena.Current.FormattedRank != "Diamond III - 1250 CSR" {
			t.Errorf("unexpected arena CSR: %+v", arena.Current)
		}
		if len(fake.recordedXUIDs) != 1 || fake.recordedXUIDs[0] != "2535445291321133" {
			t.Errorf("service record fetched for wrong xuid: %v", fake.recordedXUIDs)
		}
	})

	t.Run("PlaylistFailureIsSkipped", func(t *testing.T) {
		fake := newFake()
		fake.csr[RankedPlaylists[0].ID] = csrResponse("Onyx", 0, 1520)
		fake.csrErr[RankedPlaylists[1].ID] = fmt.Errorf("API error: 404")
		fake.csr[RankedPlaylists[2].ID] = csrResponse("Gold", 5, 900)

		svc := NewRecordService(fake, zerolog.Nop())
		result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("per-playlist failure must not fail the record: %v", err)
		}

		if _, ok := result.CSRData["ranked_slayer"]; ok {
			t.Error("failed playlist should be omitted")
		}
		if len(result.CSRData) != 2 {
			t.Errorf("expected 2 playlists, got %d", len(result.CSRData))
		}
	})

	t.Run("AllPlaylistsFail", func(t *testing.T) {
		fake := newFake()
		for _, p := range RankedPlaylists {
			fake.csrErr[p.ID] = fmt.Errorf("API error: 500")
		}

		svc := NewRecordService(fake, zerolog.Nop())
		result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("CSR failures must not fail the record: %v", err)
		}
		if len(result.CSRData) != 0 {
			t.Errorf("expected empty csr_data, got %d entries", len(result.CSRData))
		}
		if len(fake.csrCalls) != len(RankedPlaylists) {
			t.Errorf("every playlist should still be attempted, got %d calls", len(fake.csrCalls))
		}
	})

	t.Run("EmptyCSRValueIsSkipped", func(t *testing.T) {
		fake := newFake()
		fake.csr[RankedPlaylists[0].ID] = &api.PlaylistCSRResponse{}
		fake.csr[RankedPlaylists[1].ID] = &api.PlaylistCSRResponse{
			Value: []api.PlayerCSR{{ID: "xuid(1)", Result: nil}},
		}

		svc := NewRecordService(fake, zerolog.Nop())
		result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("GetServiceRecord: %v", err)
		}
		if len(result.CSRData) != 0 {
			t.Errorf("expected no csr_data for empty results, got %d", len(result.CSRData))
		}
	})

	t.Run("EmptyGamertag", func(t *testing.T) {
		svc := NewRecordService(newFake(), zerolog.Nop())
		if _, err := svc.GetServiceRecord(context.Background(), "   "); err == nil {
			t.Error("expected error for blank gamertag")
		}
	})

	t.Run("LookupFailure", func(t *testing.T) {
		fake := newFake()
		fake.userErr = fmt.Errorf("API error: 404")

		svc := NewRecordService(fake, zerolog.Nop())
		_, err := svc.GetServiceRecord(context.Background(), "nobody")
		if err == nil {
			t.Fatal("expected error when gamertag lookup fails")
		}
		if !strings.Contains(err.Error(), "failed to get service record") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("PvpStatsOptional", func(t *testing.T) {
		fake := newFake()
		fake.record.PvpStats = &api.CoreStats{Kills: 800, Deaths: 600}

		svc := NewRecordService(fake, zerolog.Nop())
		result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("GetServiceRecord: %v", err)
		}
		if result.ServiceRecord.PvpStats == nil || result.ServiceRecord.PvpStats.Kills != 800 {
			t.Errorf("pvp stats not carried: %+v", result.ServiceRecord.PvpStats)
		}

		fake.record.PvpStats = nil
		result, err = svc.GetServiceRecord(context.Background(), "itsmrpixle")
		if err != nil {
			t.Fatalf("GetServiceRecord: %v", err)
		}
		if result.ServiceRecord.PvpStats != nil {
			t.Error("pvp_stats should be null when absent upstream")
		}
	})
}

func TestWriteReport(t *testing.T) {
	fake := newFake()
	fake.csr[RankedPlaylists[0].ID] = csrResponse("Onyx", 0, 1520)
	svc := NewRecordService(fake, zerolog.Nop())
	result, err := svc.GetServiceRecord(context.Background(), "itsmrpixle")
	if err != nil {
		t.Fatalf("GetServiceRecord: %v", err)
	}

	var sb strings.Builder
	WriteReport(&sb, result)
	out := sb.String()

	for _, want := range []string{
		"Player: itsmrpixle",
		"Total Matches: 100",
		"Win Rate: 60.0%",
		"K/D Ratio: 1.25",
		"ranked_arena:",
		"Onyx - 1520 CSR",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}
