package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"speakit/config"
	"speakit/internal/domain/entity"
	"speakit/internal/domain/repository"
	"speakit/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory user store ---

// fakeUserStore implements UserRepository, RepositoryFactory and
// TransactionManager over a single map so tests can observe exactly what a
// use case persisted.
type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User

	findErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*entity.User)}
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.byEmail {
		if user.ID == id {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	user, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (s *fakeUserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.byEmail[user.Email] = cloneUser(user)

	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}

	if _, ok := s.byEmail[user.Email]; !ok {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = time.Now()
	s.byEmail[user.Email] = cloneUser(user)

	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}

	if _, ok := s.byEmail[user.Email]; !ok {
		return repository.ErrUserNotFound
	}

	delete(s.byEmail, user.Email)

	return nil
}

// stored returns the persisted row for direct assertions.
func (s *fakeUserStore) stored(email string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil
	}

	return cloneUser(user)
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.byEmail)
}

func (s *fakeUserStore) seed(user *entity.User) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.byEmail[user.Email] = cloneUser(user)

	return cloneUser(user)
}

func (s *fakeUserStore) UserRepo() repository.UserRepository {
	return s
}

func (s *fakeUserStore) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(s)
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user

	return &cloned
}

// --- Fake provider adapter and registry ---

type fakeAdapter struct {
	providerType entity.ProviderType
	token        string
	profile      *service.ProviderProfile

	exchangeErr error
	userInfoErr error
	revokeErr   error

	exchangeCalls int
	revokeCalls   int
	revokedTokens []string
}

func (a *fakeAdapter) Type() entity.ProviderType { return a.providerType }

func (a *fakeAdapter) AuthorizationURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (a *fakeAdapter) ExchangeCodeForToken(_ context.Context, _ string) (string, error) {
	a.exchangeCalls++
	if a.exchangeErr != nil {
		return "", a.exchangeErr
	}

	return a.token, nil
}

func (a *fakeAdapter) FetchUserInfo(_ context.Context, _ string) (*service.ProviderProfile, error) {
	if a.userInfoErr != nil {
		return nil, a.userInfoErr
	}

	return a.profile, nil
}

func (a *fakeAdapter) Revoke(_ context.Context, accessToken string) error {
	a.revokeCalls++
	a.revokedTokens = append(a.revokedTokens, accessToken)

	return a.revokeErr
}

type fakeRegistry struct {
	adapters map[entity.ProviderType]service.OAuthProvider
}

func newFakeRegistry(adapters ...service.OAuthProvider) *fakeRegistry {
	reg := &fakeRegistry{adapters: make(map[entity.ProviderType]service.OAuthProvider)}
	for _, adapter := range adapters {
		reg.adapters[adapter.Type()] = adapter
	}

	return reg
}

func (r *fakeRegistry) Lookup(name entity.ProviderType) (service.OAuthProvider, bool) {
	adapter, ok := r.adapters[name]

	return adapter, ok
}

// --- Fake event publisher ---

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.AccountEvent
	err    error
}

func (p *fakePublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []*service.AccountEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.AccountEvent(nil), p.events...)
}

// errNetwork simulates a provider-side failure in tests.
var errNetwork = errors.New("provider unreachable")

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = &config.JWTConfig{
		Secret:          "unit-test-signing-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 14 * 24 * time.Hour,
	}
	cfg.Auth = &config.AuthConfig{BcryptCost: 4}
	cfg.PasswordStrength = &config.PasswordStrengthConfig{MinLength: 6}

	return cfg
}
