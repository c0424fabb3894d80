// Package oauthstate round-trips the in-flight social login state through
// client-held cookies, so no server-side session store is needed and the
// flow works across horizontally scaled instances.
package oauthstate

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"speakit/config"
	"speakit/internal/domain/constants"

	"github.com/pkg/errors"
)

// stateVersion tags the serialized payload so the schema can evolve without
// breaking cookies written by an older deployment.
const stateVersion = 1

// stateTTL bounds how long a login attempt may stay in flight.
const stateTTL = 180 * time.Second

// AuthorizationState is the explicit, versioned record of one in-flight
// provider login attempt.
type AuthorizationState struct {
	Version   int    `json:"v"`
	Provider  string `json:"provider"`
	Nonce     string `json:"nonce"`
	CreatedAt int64  `json:"created_at"`
}

// Store reads and writes the authorization-state and redirect-target cookies.
type Store struct {
	cookieDomain string
	secure       bool
}

// NewStore builds the store from the shared cookie configuration.
func NewStore(cfg *config.Config) *Store {
	store := &Store{}
	if cfg != nil && cfg.Cookie != nil {
		store.cookieDomain = cfg.Cookie.Domain
		store.secure = cfg.Cookie.Secure
	}

	return store
}

// Save writes the state into its fixed-name cookie with the flow TTL. An
// optional post-login redirect target is written to a second cookie with the
// same TTL. A nil state behaves as Remove.
func (s *Store) Save(w http.ResponseWriter, state *AuthorizationState, redirectURI string) error {
	if state == nil {
		s.Remove(w)

		return nil
	}

	state.Version = stateVersion
	if state.CreatedAt == 0 {
		state.CreatedAt = time.Now().Unix()
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to serialize authorization state")
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, s.cookie(constants.AuthRequestCookie, encoded, int(stateTTL.Seconds())))

	if redirectURI != "" {
		http.SetCookie(w, s.cookie(constants.RedirectURICookie, redirectURI, int(stateTTL.Seconds())))
	}

	return nil
}

// Load reads and deserializes the state cookie without deleting it. A missing
// cookie, a foreign payload version or a corrupt value all yield nil.
func (s *Store) Load(r *http.Request) *AuthorizationState {
	cookie, err := r.Cookie(constants.AuthRequestCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var state AuthorizationState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil
	}
	if state.Version != stateVersion {
		return nil
	}

	return &state
}

// RedirectURI returns the stored post-login redirect target, if any.
func (s *Store) RedirectURI(r *http.Request) string {
	cookie, err := r.Cookie(constants.RedirectURICookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// Remove deletes both cookies by re-emitting them with Max-Age 0. Deletion is
// advisory to the browser, so this is CSRF-window mitigation, not a hard
// single-use guarantee.
func (s *Store) Remove(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(constants.AuthRequestCookie, "", 0))
	http.SetCookie(w, s.cookie(constants.RedirectURICookie, "", 0))
}

// Consume loads then removes, so the callback paths see the state exactly
// once from the server's perspective.
func (s *Store) Consume(r *http.Request, w http.ResponseWriter) *AuthorizationState {
	state := s.Load(r)
	s.Remove(w)

	return state
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.cookieDomain,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteNoneMode,
	}
	if maxAge > 0 {
		cookie.MaxAge = maxAge
	} else {
		cookie.MaxAge = -1
	}

	return cookie
}
