// Package identity links community accounts to their game account through the
// Xbox Live federation chain.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/saofrance/shop-api/internal/domain"
)

// Endpoints holds the federation base URLs; tests point them at local servers
type Endpoints struct {
	UserAuthURL     string
	XSTSURL         string
	GameServicesURL string
}

// Exchange is the game services access token obtained through the three hops
type Exchange struct {
	Token     string
	ExpiresIn time.Duration
}

// Client talks to the federation and game services
type Client struct {
	http      *http.Client
	endpoints Endpoints
}

// NewClient creates a federation client with the given request timeout
func NewClient(endpoints Endpoints, timeout time.Duration) *Client {
	endpoints.GameServicesURL = strings.TrimRight(endpoints.GameServicesURL, "/")
	return &Client{
		http:      &http.Client{Timeout: timeout},
		endpoints: endpoints,
	}
}

type xblProperties struct {
	AuthMethod string   `json:"AuthMethod,omitempty"`
	SiteName   string   `json:"SiteName,omitempty"`
	RpsTicket  string   `json:"RpsTicket,omitempty"`
	SandboxID  string   `json:"SandboxId,omitempty"`
	UserTokens []string `json:"UserTokens,omitempty"`
}

type xblRequest struct {
	Properties   xblProperties `json:"Properties"`
	RelyingParty string        `json:"RelyingParty"`
	TokenType    string        `json:"TokenType"`
}

type xblResponse struct {
	Token         string `json:"Token"`
	DisplayClaims struct {
		Xui []struct {
			Uhs string `json:"uhs"`
		} `json:"xui"`
	} `json:"DisplayClaims"`
}

type loginRequest struct {
	IdentityToken string `json:"identityToken"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type entitlementsResponse struct {
	Items []json.RawMessage `json:"items"`
}

// Exchange runs user authentication, XSTS authorization and the game login
// with the broker access token.
func (c *Client) Exchange(ctx context.Context, brokerToken string) (*Exchange, error) {
	var user xblResponse
	err := c.postJSON(ctx, c.endpoints.UserAuthURL, xblRequest{
		Properties: xblProperties{
			AuthMethod: AuthMethodRPS,
			SiteName:   UserAuthSiteName,
			RpsTicket:  RPSTicketPrefix + brokerToken,
		},
		RelyingParty: UserAuthRelyingParty,
		TokenType:    TokenTypeJWT,
	}, &user)
	if err != nil {
		return nil, fmt.Errorf("user authentication: %w", err)
	}

	var xsts xblResponse
	err = c.postJSON(ctx, c.endpoints.XSTSURL, xblRequest{
		Properties: xblProperties{
			SandboxID:  XSTSSandbox,
			UserTokens: []string{user.Token},
		},
		RelyingParty: XSTSRelyingParty,
		TokenType:    TokenTypeJWT,
	}, &xsts)
	if err != nil {
		return nil, fmt.Errorf("xsts authorization: %w", err)
	}
	if len(xsts.DisplayClaims.Xui) == 0 || xsts.DisplayClaims.Xui[0].Uhs == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, ErrMsgNoUserHash)
	}

	var login loginResponse
	err = c.postJSON(ctx, c.endpoints.GameServicesURL+LoginWithXboxPath, loginRequest{
		IdentityToken: fmt.Sprintf(IdentityTokenFormat, xsts.DisplayClaims.Xui[0].Uhs, xsts.Token),
	}, &login)
	if err != nil {
		return nil, fmt.Errorf("game login: %w", err)
	}
	if login.AccessToken == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamFailure, ErrMsgEmptyToken)
	}

	return &Exchange{
		Token:     login.AccessToken,
		ExpiresIn: time.Duration(login.ExpiresIn) * time.Second,
	}, nil
}

// HasGame reports whether the token's owner holds a game entitlement
func (c *Client) HasGame(ctx context.Context, token string) (bool, error) {
	var entitlements entitlementsResponse
	if err := c.getBearer(ctx, token, EntitlementsPath, &entitlements); err != nil {
		return false, fmt.Errorf("entitlements: %w", err)
	}
	return len(entitlements.Items) > 0, nil
}

// Profile fetches the game profile of the token's owner
func (c *Client) Profile(ctx context.Context, token string) (*domain.GameProfile, error) {
	var profile domain.GameProfile
	if err := c.getBearer(ctx, token, ProfilePath, &profile); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &profile, nil
}

func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ContentTypeJSON)
	req.Header.Set("Accept", ContentTypeJSON)
	return c.do(c.http, req, out)
}

// getBearer calls the game services with the exchanged token through an
// oauth2 client sharing the base client's transport and timeout
func (c *Client) getBearer(ctx context.Context, token, path string, out any) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	client.Timeout = c.http.Timeout

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.GameServicesURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", ContentTypeJSON)
	return c.do(client, req, out)
}

func (c *Client) do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseBytes))
		return fmt.Errorf("%w: %s returned status %d", domain.ErrUpstreamFailure, req.URL.Host, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUpstreamFailure, err)
	}
	return nil
}
