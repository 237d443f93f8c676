package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"

	"github.com/ChaseWoodhams/SPNKr/internal/config"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// codeResult carries the outcome of one authorization callback.
type codeResult struct {
	token *oauth2.Token
	err   error
}

// CodeFlow runs the interactive authorization-code flow used once, to
// obtain a refresh token. It prints a consent URL, waits for the
// browser redirect on a local callback server, exchanges the code and
// returns the refresh token.
type CodeFlow struct {
	oauth  *oauth2.Config
	state  string
	logger zerolog.Logger

	once    sync.Once
	results chan codeResult
}

func NewCodeFlow(cfg *config.Config, logger zerolog.Logger) (*CodeFlow, error) {
	state, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}
	return &CodeFlow{
		oauth:   OAuthConfig(cfg),
		state:   state,
		logger:  logger,
		results: make(chan codeResult, 1),
	}, nil
}

// ConsentURL is the URL the user must open in a browser.
func (f *CodeFlow) ConsentURL() string {
	return f.oauth.AuthCodeURL(f.state, oauth2.AccessTypeOffline)
}

// Wait serves the callback endpoint on addr until a code arrives or
// ctx expires, and returns the refresh token from the exchange.
func (f *CodeFlow) Wait(ctx context.Context, addr string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("callback listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", f.handleCallback)
	srv := &http.Server{Handler: mux}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			f.send(codeResult{err: err})
		}
	}()
	defer srv.Close()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-f.results:
		if result.err != nil {
			return "", result.err
		}
		if result.token.RefreshToken == "" {
			return "", fmt.Errorf("token exchange returned no refresh token")
		}
		return result.token.RefreshToken, nil
	}
}

func (f *CodeFlow) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if state := query.Get("state"); state != f.state {
		f.send(codeResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	f.logger.Debug().Str("path", r.URL.Path).Msg("authorization callback received")

	code := query.Get("code")
	if code == "" {
		f.send(codeResult{err: fmt.Errorf("authorization failed: %s - %s",
			query.Get("error"), query.Get("error_description"))})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := f.oauth.Exchange(r.Context(), code)
	if err != nil {
		f.send(codeResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	f.send(codeResult{token: token})
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, "<html><body><h1>Authorization successful</h1><p>You can close this window and return to the terminal.</p></body></html>")
}

func (f *CodeFlow) send(result codeResult) {
	f.once.Do(func() {
		f.results <- result
	})
}

// CallbackAddr derives the local listen address from the configured
// redirect URI, defaulting to the HTTPS port the Azure app template
// registers.
func CallbackAddr(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return "localhost:443"
	}
	if u.Port() == "" {
		if u.Scheme == "http" {
			return u.Hostname() + ":80"
		}
		return u.Hostname() + ":443"
	}
	return u.Host
}
