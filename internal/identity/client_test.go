package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/domain"
)

// newFederationServer serves all endpoints from one test server
func newFederationServer(t *testing.T, entitled bool) (*httptest.Server, Endpoints) {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/user/authenticate", func(w http.ResponseWriter, r *http.Request) {
		var req xblRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "d=broker-token", req.Properties.RpsTicket)
		assert.Equal(t, UserAuthRelyingParty, req.RelyingParty)
		_, _ = w.Write([]byte(`{"Token": "xbl-token", "DisplayClaims": {"xui": [{"uhs": "hash"}]}}`))
	})
	mux.HandleFunc("/xsts/authorize", func(w http.ResponseWriter, r *http.Request) {
		var req xblRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"xbl-token"}, req.Properties.UserTokens)
		assert.Equal(t, XSTSRelyingParty, req.RelyingParty)
		_, _ = w.Write([]byte(`{"Token": "xsts-token", "DisplayClaims": {"xui": [{"uhs": "hash"}]}}`))
	})
	mux.HandleFunc(LoginWithXboxPath, func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "XBL3.0 x=hash;xsts-token", req.IdentityToken)
		_, _ = w.Write([]byte(`{"access_token": "game-token", "expires_in": 86400}`))
	})
	mux.HandleFunc(EntitlementsPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer game-token", r.Header.Get("Authorization"))
		if entitled {
			_, _ = w.Write([]byte(`{"items": [{"name": "game_minecraft"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items": []}`))
	})
	mux.HandleFunc(ProfilePath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer game-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": "uuid-1", "name": "Kirito", "skins": [{"id": "s1", "state": "ACTIVE", "url": "http://skin", "variant": "SLIM"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, Endpoints{
		UserAuthURL:     srv.URL + "/user/authenticate",
		XSTSURL:         srv.URL + "/xsts/authorize",
		GameServicesURL: srv.URL + "/",
	}
}

func TestClient_Exchange(t *testing.T) {
	_, endpoints := newFederationServer(t, true)
	c := NewClient(endpoints, time.Second)

	exchange, err := c.Exchange(context.Background(), "broker-token")
	require.NoError(t, err)
	assert.Equal(t, "game-token", exchange.Token)
	assert.Equal(t, 24*time.Hour, exchange.ExpiresIn)
}

func TestClient_HasGameAndProfile(t *testing.T) {
	_, endpoints := newFederationServer(t, true)
	c := NewClient(endpoints, time.Second)
	ctx := context.Background()

	owns, err := c.HasGame(ctx, "game-token")
	require.NoError(t, err)
	assert.True(t, owns)

	profile, err := c.Profile(ctx, "game-token")
	require.NoError(t, err)
	assert.Equal(t, "Kirito", profile.Name)
	require.NotNil(t, profile.ActiveSkin())
	assert.Equal(t, "SLIM", profile.ActiveSkin().Variant)
}

func TestClient_NoEntitlement(t *testing.T) {
	_, endpoints := newFederationServer(t, false)
	c := NewClient(endpoints, time.Second)

	owns, err := c.HasGame(context.Background(), "game-token")
	require.NoError(t, err)
	assert.False(t, owns)
}

func TestClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := NewClient(Endpoints{UserAuthURL: srv.URL, XSTSURL: srv.URL, GameServicesURL: srv.URL}, time.Second)

	_, err := c.Exchange(context.Background(), "broker-token")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)

	_, err = c.HasGame(context.Background(), "game-token")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestClient_MissingUserHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Token": "t", "DisplayClaims": {"xui": []}}`))
	}))
	defer srv.Close()
	c := NewClient(Endpoints{UserAuthURL: srv.URL, XSTSURL: srv.URL, GameServicesURL: srv.URL}, time.Second)

	_, err := c.Exchange(context.Background(), "broker-token")
	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
