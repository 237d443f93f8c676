package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ChaseWoodhams/SPNKr/internal/config"
	"github.com/ChaseWoodhams/SPNKr/internal/constants"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	liveAuthorizeURL = "https://login.live.com/oauth20_authorize.srf"
	liveTokenURL     = "https://login.live.com/oauth20_token.srf"
)

var liveScopes = []string{"Xboxlive.signin", "Xboxlive.offline_access"}

// Authenticator walks the full token chain: OAuth2 refresh grant
// against Windows Live, Xbox Live user token, XSTS authorization for
// both relying parties, then the spartan and clearance exchanges.
// Token sets are cached until shortly before expiry; concurrent
// refreshes are collapsed through singleflight.
type Authenticator struct {
	cfg    *config.Config
	oauth  *oauth2.Config
	client *fasthttp.Client
	logger zerolog.Logger

	mu     sync.RWMutex
	cached *TokenSet
	group  singleflight.Group
}

func New(cfg *config.Config, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		oauth:  OAuthConfig(cfg),
		logger: logger,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// OAuthConfig builds the Windows Live OAuth2 configuration shared by
// the refresh grant and the interactive authorization-code flow.
func OAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       liveScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  liveAuthorizeURL,
			TokenURL: liveTokenURL,
		},
	}
}

// Tokens returns a valid token set, refreshing through the full chain
// when the cached one has expired or was never obtained.
func (a *Authenticator) Tokens(ctx context.Context) (*TokenSet, error) {
	a.mu.RLock()
	cached := a.cached
	a.mu.RUnlock()

	if cached.Valid(time.Now()) {
		a.logger.Debug().Str("gamertag", cached.Gamertag).Time("expiry", cached.Expiry).Msg("using cached tokens")
		return cached, nil
	}

	result, err, _ := a.group.Do("refresh", func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// refreshed while this one waited.
		a.mu.RLock()
		cached := a.cached
		a.mu.RUnlock()
		if cached.Valid(time.Now()) {
			return cached, nil
		}

		tokens, err := a.refresh(ctx)
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.cached = tokens
		a.mu.Unlock()
		return tokens, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*TokenSet), nil
}

func (a *Authenticator) refresh(ctx context.Context) (*TokenSet, error) {
	if err := a.cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.AuthTimeout)
	defer cancel()

	a.logger.Info().Msg("refreshing authentication tokens")

	src := a.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: a.cfg.RefreshToken})
	oauthToken, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("authenticate: oauth2 refresh: %w", err)
	}

	userToken, err := a.requestUserToken(ctx, oauthToken.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	identity, err := a.requestXSTSToken(ctx, userToken, xboxLiveRelyingParty)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if len(identity.DisplayClaims.XUI) == 0 {
		return nil, fmt.Errorf("authenticate: no identity claims in xsts response")
	}
	gamertag := identity.DisplayClaims.XUI[0].Gamertag
	xuid := identity.DisplayClaims.XUI[0].XID

	haloXSTS, err := a.requestXSTSToken(ctx, userToken, haloRelyingParty)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	spartan, expiry, err := a.requestSpartanToken(ctx, haloXSTS.Token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	clearance, err := a.requestClearanceToken(ctx, spartan, xuid)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	a.logger.Info().
		Str("gamertag", gamertag).
		Str("xuid", xuid).
		Time("expiry", expiry).
		Msg("authenticated")

	return &TokenSet{
		SpartanToken:   spartan,
		ClearanceToken: clearance,
		Gamertag:       gamertag,
		XUID:           xuid,
		Expiry:         expiry,
	}, nil
}
