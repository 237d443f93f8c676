package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"
)

const (
	userAuthURL = "https://user.auth.xboxlive.com/user/authenticate"
	xstsAuthURL = "https://xsts.auth.xboxlive.com/xsts/authorize"

	xboxLiveRelyingParty = "http://xboxlive.com"
	haloRelyingParty     = "https://prod.xsts.halowaypoint.com/"
)

type xboxTokenRequest struct {
	Properties   map[string]any `json:"Properties"`
	RelyingParty string         `json:"RelyingParty"`
	TokenType    string         `json:"TokenType"`
}

type xboxTokenResponse struct {
	Token         string `json:"Token"`
	DisplayClaims struct {
		XUI []struct {
			XID      string `json:"xid"`
			Gamertag string `json:"gtg"`
			UserHash string `json:"uhs"`
		} `json:"xui"`
	} `json:"DisplayClaims"`
}

// requestUserToken trades the OAuth2 access token for an Xbox Live
// user token.
func (a *Authenticator) requestUserToken(ctx context.Context, accessToken string) (string, error) {
	body := xboxTokenRequest{
		Properties: map[string]any{
			"AuthMethod": "RPS",
			"SiteName":   "user.auth.xboxlive.com",
			"RpsTicket":  "d=" + accessToken,
		},
		RelyingParty: "http://auth.xboxlive.com",
		TokenType:    "JWT",
	}

	var resp xboxTokenResponse
	if err := a.postJSON(ctx, userAuthURL, body, &resp, nil); err != nil {
		return "", fmt.Errorf("xbox user token: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("xbox user token: empty token in response")
	}
	return resp.Token, nil
}

// requestXSTSToken authorizes the user token against a relying party.
// The xboxlive.com party yields the player identity claims; the
// halowaypoint.com party yields the token the spartan exchange wants.
func (a *Authenticator) requestXSTSToken(ctx context.Context, userToken, relyingParty string) (*xboxTokenResponse, error) {
	body := xboxTokenRequest{
		Properties: map[string]any{
			"SandboxId":  "RETAIL",
			"UserTokens": []string{userToken},
		},
		RelyingParty: relyingParty,
		TokenType:    "JWT",
	}

	var resp xboxTokenResponse
	if err := a.postJSON(ctx, xstsAuthURL, body, &resp, nil); err != nil {
		return nil, fmt.Errorf("xsts token for %s: %w", relyingParty, err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("xsts token for %s: empty token in response", relyingParty)
	}
	return &resp, nil
}

func (a *Authenticator) postJSON(ctx context.Context, url string, payload any, out any, headers map[string]string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.SetBody(encoded)

	deadline, ok := ctx.Deadline()
	if ok {
		err = a.client.DoDeadline(req, resp, deadline)
	} else {
		err = a.client.Do(req, resp)
	}
	if err != nil {
		return err
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return json.Unmarshal(resp.Body(), out)
}
