package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"speakit/config"
	"speakit/internal/domain/entity"
	domainerrors "speakit/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() *config.OAuthClientConfig {
	return &config.OAuthClientConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_secret",
		RedirectURI:  "http://localhost:8080/login/oauth2/callback/test",
	}
}

func newGoogleForTest(srv *httptest.Server) *googleProvider {
	p := NewGoogle(testClientConfig()).(*googleProvider)
	p.tokenURL = srv.URL + "/token"
	p.userInfoURL = srv.URL + "/userinfo"
	p.revokeURL = srv.URL + "/revoke"

	return p
}

func TestGoogleProvider_AuthorizationURL(t *testing.T) {
	p := NewGoogle(testClientConfig())

	got := p.AuthorizationURL("state123")

	assert.Contains(t, got, "https://accounts.google.com/o/oauth2/v2/auth?")
	assert.Contains(t, got, "client_id=test_client_id")
	assert.Contains(t, got, "response_type=code")
	assert.Contains(t, got, "state=state123")
}

func TestGoogleProvider_ExchangeCodeForToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authcode", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"provider-token","token_type":"Bearer"}`)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	token, err := p.ExchangeCodeForToken(context.Background(), "authcode")
	require.NoError(t, err)
	assert.Equal(t, "provider-token", token)
}

func TestGoogleProvider_ExchangeCodeForToken_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	_, err := p.ExchangeCodeForToken(context.Background(), "bad-code")
	assert.ErrorIs(t, err, domainerrors.ErrProviderExchangeFailed)
}

func TestGoogleProvider_ExchangeCodeForToken_EmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"token_type":"Bearer"}`)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	_, err := p.ExchangeCodeForToken(context.Background(), "authcode")
	assert.ErrorIs(t, err, domainerrors.ErrProviderExchangeFailed)
}

func TestGoogleProvider_FetchUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		io.WriteString(w, `{"sub":"g123","email":"ann@x.com","name":"Ann"}`)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	profile, err := p.FetchUserInfo(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", profile.Email)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "g123", profile.ID)
	assert.Equal(t, entity.ProviderTypeGoogle, profile.Provider)
}

func TestGoogleProvider_FetchUserInfo_MissingEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"sub":"g123","name":"Ann"}`)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	_, err := p.FetchUserInfo(context.Background(), "provider-token")
	assert.ErrorIs(t, err, domainerrors.ErrProviderEmailMissing)
}

func TestGoogleProvider_Revoke(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	require.NoError(t, p.Revoke(context.Background(), "provider-token"))
	assert.Equal(t, "provider-token", gotToken)
}

func TestGoogleProvider_Revoke_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := newGoogleForTest(srv)

	err := p.Revoke(context.Background(), "provider-token")
	assert.ErrorIs(t, err, domainerrors.ErrProviderRevokeFailed)
}

func TestNaverProvider_FetchUserInfo_NestedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"resultcode":"00","message":"success","response":{"id":"n123","email":"bob@x.com","name":"Bob"}}`)
	}))
	defer srv.Close()

	p := NewNaver(testClientConfig()).(*naverProvider)
	p.userInfoURL = srv.URL

	profile, err := p.FetchUserInfo(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", profile.Email)
	assert.Equal(t, "Bob", profile.Name)
	assert.Equal(t, "n123", profile.ID)
	assert.Equal(t, entity.ProviderTypeNaver, profile.Provider)
}

func TestNaverProvider_Revoke_SendsDeleteGrant(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewNaver(testClientConfig()).(*naverProvider)
	p.tokenURL = srv.URL

	require.NoError(t, p.Revoke(context.Background(), "provider-token"))
	assert.Equal(t, "delete", gotQuery["grant_type"][0])
	assert.Equal(t, "provider-token", gotQuery["access_token"][0])
	assert.Equal(t, "NAVER", gotQuery["service_provider"][0])
}

func TestKakaoProvider_FetchUserInfo_NumericIDAndNickname(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":99887766,"kakao_account":{"email":"kim@x.com"},"properties":{"nickname":"Kim"}}`)
	}))
	defer srv.Close()

	p := NewKakao(testClientConfig()).(*kakaoProvider)
	p.userInfoURL = srv.URL

	profile, err := p.FetchUserInfo(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "kim@x.com", profile.Email)
	assert.Equal(t, "Kim", profile.Name)
	assert.Equal(t, "99887766", profile.ID)
	assert.Equal(t, entity.ProviderTypeKakao, profile.Provider)
}

func TestKakaoProvider_FetchUserInfo_NicknameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":1,"kakao_account":{"email":"kim@x.com"},"properties":{}}`)
	}))
	defer srv.Close()

	p := NewKakao(testClientConfig()).(*kakaoProvider)
	p.userInfoURL = srv.URL

	profile, err := p.FetchUserInfo(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, kakaoFallbackName, profile.Name)
}

func TestKakaoProvider_Revoke_UsesBearerPost(t *testing.T) {
	var gotMethod, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewKakao(testClientConfig()).(*kakaoProvider)
	p.unlinkURL = srv.URL

	require.NoError(t, p.Revoke(context.Background(), "provider-token"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer provider-token", gotAuth)
}

func TestRegistry_Lookup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		OAuth: &config.OAuthConfig{
			Google: testClientConfig(),
			Kakao:  testClientConfig(),
		},
	}

	reg := NewRegistry(cfg, logger)

	google, ok := reg.Lookup(entity.ProviderTypeGoogle)
	require.True(t, ok)
	assert.Equal(t, entity.ProviderTypeGoogle, google.Type())

	_, ok = reg.Lookup(entity.ProviderTypeNaver)
	assert.False(t, ok)
}
