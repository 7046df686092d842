package identity

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/contactdesk/contactdesk-backend/internal/notify"
	"github.com/contactdesk/contactdesk-backend/pkg/config"
	pkgerrors "github.com/contactdesk/contactdesk-backend/pkg/errors"
	"github.com/contactdesk/contactdesk-backend/pkg/kv"
	"github.com/contactdesk/contactdesk-backend/pkg/logger"
)

const (
	loggedInSentinel          = "true"
	invalidCredentialsMessage = "Incorrect email or password!"
	logoutSuccessMessage      = "Logout successful!"
)

// Service owns the single registered account and the session flag. State is
// hydrated from the KV store at construction and written through on every
// change. Exactly one account exists at a time; registering overwrites it.
type Service struct {
	kvStore  kv.Store
	creds    credentialScheme
	notifier *notify.Notifier
	logg     *logger.Logger
	cfg      config.AuthConfig

	mu            sync.Mutex
	loggedIn      bool
	current       *UserAccount
	logoutPending bool
	logoutTimer   *time.Timer
}

// ServiceParams bundles the dependencies for the identity service.
type ServiceParams struct {
	KV       kv.Store
	Notifier *notify.Notifier
	Logger   *logger.Logger
	Config   config.AuthConfig
}

// NewService builds the identity service and hydrates session state: logged
// in only when both a parseable account and a truthy flag are stored.
func NewService(ctx context.Context, params ServiceParams) (*Service, error) {
	if params.KV == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "kv store required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifier required")
	}
	creds, err := schemeFromConfig(params.Config)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "credential scheme")
	}

	s := &Service{
		kvStore:  params.KV,
		creds:    creds,
		notifier: params.Notifier,
		logg:     params.Logger,
		cfg:      params.Config,
	}

	account := s.storedAccount(ctx)
	flag, err := s.kvStore.Get(ctx, kv.KeyIsLoggedIn)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session flag")
	}
	if account != nil && flag == loggedInSentinel {
		s.loggedIn = true
		s.current = account
	}

	return s, nil
}

// Register unconditionally overwrites the single account, persists it along
// with the session flag, and leaves the caller logged in.
func (s *Service) Register(ctx context.Context, username, email, password string) (SessionDTO, error) {
	if err := wait(ctx, s.cfg.RegisterDelay); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "register interrupted")
	}

	sealed, err := s.creds.Seal(password)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seal credential")
	}

	account := UserAccount{Username: username, Email: email, Password: sealed}
	raw, err := json.Marshal(account)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode account")
	}

	if err := s.kvStore.Set(ctx, kv.KeyUser, string(raw)); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist account")
	}
	if err := s.kvStore.Set(ctx, kv.KeyIsLoggedIn, loggedInSentinel); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session flag")
	}

	s.mu.Lock()
	s.loggedIn = true
	s.current = &account
	s.mu.Unlock()

	return s.Session(), nil
}

// Login re-reads the stored account and establishes the session only when
// the email matches exactly and the credential scheme accepts the password.
// Failure leaves session state untouched and is indistinguishable between
// unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (SessionDTO, error) {
	if err := wait(ctx, s.cfg.LoginDelay); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "login interrupted")
	}

	account := s.storedAccount(ctx)
	if account == nil || account.Email != email {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	ok, err := s.creds.Verify(password, account.Password)
	if err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !ok {
		return SessionDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if err := s.kvStore.Set(ctx, kv.KeyIsLoggedIn, loggedInSentinel); err != nil {
		return SessionDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session flag")
	}

	s.mu.Lock()
	s.loggedIn = true
	s.current = account
	s.mu.Unlock()

	return s.Session(), nil
}

// Logout schedules the session clear behind a confirmation notification so
// the user sees it before the session actually drops. A second request while
// one is pending is ignored. Returns whether a logout was started.
// The stored account survives, so the same credentials log in again.
func (s *Service) Logout(ctx context.Context) bool {
	s.mu.Lock()
	if s.logoutPending || !s.loggedIn {
		s.mu.Unlock()
		return false
	}
	s.logoutPending = true

	delay := s.cfg.LogoutDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	// the notification is display only; the clear rides its own timer so a
	// superseding message cannot keep the session alive
	s.notifier.Show(notify.KindSuccess, logoutSuccessMessage, delay, nil)
	s.logoutTimer = time.AfterFunc(delay, s.completeLogout)
	s.mu.Unlock()
	return true
}

func (s *Service) completeLogout() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.kvStore.Del(ctx, kv.KeyIsLoggedIn); err != nil && s.logg != nil {
		s.logg.Error(ctx, "clear session flag", err)
	}

	s.mu.Lock()
	s.loggedIn = false
	s.current = nil
	s.logoutPending = false
	s.logoutTimer = nil
	s.mu.Unlock()
}

// Session returns a snapshot of the current session state.
func (s *Service) Session() SessionDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionDTO{
		LoggedIn: s.loggedIn,
		User:     userDTO(s.current),
	}
}

// LoggedIn reports whether a session is active.
func (s *Service) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// Close cancels a pending deferred logout.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logoutTimer != nil {
		s.logoutTimer.Stop()
		s.logoutTimer = nil
	}
	s.logoutPending = false
}

// storedAccount reads the persisted account; absent or malformed values are
// treated as no account.
func (s *Service) storedAccount(ctx context.Context) *UserAccount {
	raw, err := s.kvStore.Get(ctx, kv.KeyUser)
	if err != nil {
		return nil
	}
	var account UserAccount
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "stored account is malformed, treating as absent")
		}
		return nil
	}
	if account.Email == "" {
		return nil
	}
	return &account
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
