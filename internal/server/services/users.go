// Package services contains the server-side business logic. UserService
// registers forum accounts, signs users in and resolves session tokens back
// to users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/cryptox"
	"github.com/dmitrijs2005/tpforum/internal/dbx"
	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/dmitrijs2005/tpforum/internal/server/auth"
	"github.com/dmitrijs2005/tpforum/internal/server/avatars"
	"github.com/dmitrijs2005/tpforum/internal/server/config"
	"github.com/dmitrijs2005/tpforum/internal/server/models"
	"github.com/dmitrijs2005/tpforum/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
)

// ErrInvalidCredentials is returned by Login for an unknown login or a wrong
// password. It matches common.ErrorUnauthorized.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", common.ErrorUnauthorized)

// AuthResult is what a successful Register or Login hands back to the client.
type AuthResult struct {
	User         *models.User
	SessionToken string
	Message      string
}

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	avatars         avatars.URLResolver
	log             logging.Logger
	jwtSecret       []byte
	sessionValidity time.Duration
	now             func() time.Time
	newSessionID    func() string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, resolver avatars.URLResolver, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		avatars:         resolver,
		log:             log.With("module", "user_service"),
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidity,
		now:             time.Now,
		newSessionID:    uuid.NewString,
	}
}

// Register creates an online user and opens a session for it. The username
// is trimmed and the email lowercased before any check. A taken username or
// email yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, &ValidationError{Message: MsgAllFieldsRequired}
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, &ValidationError{Message: MsgUsernameLength}
	}
	if utf8.RuneCountInString(password) < common.MinPasswordLength {
		return nil, &ValidationError{Message: MsgPasswordLength}
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	var result *AuthResult
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		user, err := repo.Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			Status:       models.StatusOnline,
		})
		if err != nil {
			return err
		}

		token, err := s.openSession(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		result = &AuthResult{User: user, SessionToken: token, Message: MsgRegistered}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", result.User.ID)
	result.User = s.present(ctx, result.User)
	return result, nil
}

// Login signs in by username or email. Unknown logins and wrong passwords
// both yield ErrInvalidCredentials. On success the user is marked online.
func (s *UserService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, &ValidationError{Message: MsgLoginRequired}
	}

	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.burnHash(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := cryptox.VerifyPassword([]byte(password), user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	var token string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		now := s.now()
		if err := s.repomanager.Users(tx).MarkOnline(ctx, user.ID, now); err != nil {
			return err
		}
		user.Status = models.StatusOnline
		user.LastSeen = &now

		var err error
		token, err = s.openSession(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error signing in: %w", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{User: s.present(ctx, user), SessionToken: token, Message: MsgLoggedIn}, nil
}

// Session returns the user a session token belongs to. Every failure to
// resolve the token (bad signature, unknown or expired session, deleted
// user) yields common.ErrorUnauthorized.
func (s *UserService) Session(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown session", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session expired", common.ErrorUnauthorized)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: user gone", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return s.present(ctx, user), nil
}

// --- helpers below ---

func (s *UserService) openSession(ctx context.Context, tx dbx.DBTX, userID int64) (string, error) {
	now := s.now()
	session := &models.Session{
		ID:        s.newSessionID(),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionValidity),
		CreatedAt: now,
	}
	if err := s.repomanager.Sessions(tx).Create(ctx, session); err != nil {
		return "", err
	}
	token, err := auth.GenerateToken(userID, session.ID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", common.ErrorInternal, err)
	}
	return token, nil
}

// present swaps a stored avatar key for a URL the client can fetch. A
// resolver failure leaves the stored value in place.
func (s *UserService) present(ctx context.Context, u *models.User) *models.User {
	if u.AvatarURL == nil || *u.AvatarURL == "" {
		return u
	}
	url, err := s.avatars.Resolve(ctx, *u.AvatarURL)
	if err != nil {
		s.log.Warn(ctx, "avatar url not resolved", "user_id", u.ID, "error", err)
		return u
	}
	out := *u
	out.AvatarURL = &url
	return &out
}

var (
	decoyOnce sync.Once
	decoyHash string
)

// burnHash runs one verification against a fixed hash so unknown logins
// take as long as wrong passwords.
func (s *UserService) burnHash(password string) {
	decoyOnce.Do(func() {
		decoyHash, _ = cryptox.HashPassword([]byte("decoy-password"))
	})
	if decoyHash != "" {
		_, _ = cryptox.VerifyPassword([]byte(password), decoyHash)
	}
}
