package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ChaseWoodhams/SPNKr/internal/auth"
	"github.com/valyala/fasthttp"
)

// TokenProvider supplies a valid token set for each request.
type TokenProvider interface {
	Tokens(ctx context.Context) (*auth.TokenSet, error)
}

// HaloClient talks to the Halo Infinite stats services. Every call
// injects the spartan and clearance headers from the token provider.
type HaloClient struct {
	tokens TokenProvider
	client *fasthttp.Client
}

func NewHaloClient(tokens TokenProvider) *HaloClient {
	return &HaloClient{
		tokens: tokens,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// GetUserByGamertag resolves a gamertag to its profile, including the
// numeric XUID the stats endpoints key on.
func (c *HaloClient) GetUserByGamertag(ctx context.Context, gamertag string) (*User, error) {
	u := fmt.Sprintf("https://profile.svc.halowaypoint.com/users/gt(%s)", url.PathEscape(gamertag))
	return doRequest[User](ctx, c, u)
}

// GetServiceRecord fetches the aggregate matchmade service record for
// a player.
func (c *HaloClient) GetServiceRecord(ctx context.Context, xuid string) (*ServiceRecord, error) {
	u := fmt.Sprintf("https://halostats.svc.halowaypoint.com/hi/players/xuid(%s)/Matchmade/servicerecord", xuid)
	return doRequest[ServiceRecord](ctx, c, u)
}

// GetPlaylistCSR fetches ranked-skill results for the given players in
// one playlist.
func (c *HaloClient) GetPlaylistCSR(ctx context.Context, playlistID string, xuids []string) (*PlaylistCSRResponse, error) {
	players := make([]string, len(xuids))
	for i, x := range xuids {
		players[i] = fmt.Sprintf("xuid(%s)", x)
	}
	u := fmt.Sprintf("https://skill.svc.halowaypoint.com/hi/playlist/%s/csrs?players=%s",
		url.PathEscape(playlistID), url.QueryEscape(strings.Join(players, ",")))
	return doRequest[PlaylistCSRResponse](ctx, c, u)
}

func doRequest[T any](ctx context.Context, client *HaloClient, u string) (*T, error) {
	tokens, err := client.tokens.Tokens(ctx)
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-343-authorization-spartan", tokens.SpartanToken)
	req.Header.Set("343-clearance", tokens.ClearanceToken)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
