package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ChaseWoodhams/SPNKr/internal/constants"
	"github.com/valyala/fasthttp"
)

const (
	spartanTokenURL    = "https://settings.svc.halowaypoint.com/spartan-token"
	clearanceURLFormat = "https://settings.svc.halowaypoint.com/oban/flight-configurations/titles/hi/audiences/RETAIL/players/xuid(%s)/active?sandbox=UNUSED&build=222249.22.06.08.1730-0"
)

type spartanTokenRequest struct {
	Audience   string              `json:"Audience"`
	MinVersion string              `json:"MinVersion"`
	Proof      []spartanTokenProof `json:"Proof"`
}

type spartanTokenProof struct {
	Token     string `json:"Token"`
	TokenType string `json:"TokenType"`
}

type spartanTokenResponse struct {
	SpartanToken string `json:"SpartanToken"`
	ExpiresUtc   struct {
		ISO8601Date string `json:"ISO8601Date"`
	} `json:"ExpiresUtc"`
}

type clearanceResponse struct {
	FlightConfigurationID string `json:"FlightConfigurationId"`
}

// requestSpartanToken exchanges the halowaypoint XSTS token for a
// spartan token, the primary bearer credential of the stats API.
func (a *Authenticator) requestSpartanToken(ctx context.Context, xstsToken string) (string, time.Time, error) {
	body := spartanTokenRequest{
		Audience:   "urn:343:s3:services",
		MinVersion: "4",
		Proof: []spartanTokenProof{
			{Token: xstsToken, TokenType: "Xbox_XSTSv3"},
		},
	}

	var resp spartanTokenResponse
	if err := a.postJSON(ctx, spartanTokenURL, body, &resp, nil); err != nil {
		return "", time.Time{}, fmt.Errorf("spartan token: %w", err)
	}
	if resp.SpartanToken == "" {
		return "", time.Time{}, fmt.Errorf("spartan token: empty token in response")
	}

	expiry, err := time.Parse(time.RFC3339, resp.ExpiresUtc.ISO8601Date)
	if err != nil {
		expiry = time.Now().Add(constants.DefaultTokenLifetime)
	}
	return resp.SpartanToken, expiry, nil
}

// requestClearanceToken fetches the active flight configuration id,
// which the stats endpoints expect as the 343-clearance header.
func (a *Authenticator) requestClearanceToken(ctx context.Context, spartanToken, xuid string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf(clearanceURLFormat, xuid))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-343-authorization-spartan", spartanToken)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = a.client.DoDeadline(req, resp, deadline)
	} else {
		err = a.client.Do(req, resp)
	}
	if err != nil {
		return "", fmt.Errorf("clearance token: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("clearance token: unexpected status %d", resp.StatusCode())
	}

	var out clearanceResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("clearance token: %w", err)
	}
	if out.FlightConfigurationID == "" {
		return "", fmt.Errorf("clearance token: empty flight configuration id")
	}
	return out.FlightConfigurationID, nil
}
