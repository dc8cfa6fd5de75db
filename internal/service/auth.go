// Package service contains the business logic layer of the application.
//
// THE DEPENDENCY CHAIN:
//
//	GraphQL resolvers → services (rules) → repositories (MongoDB)
//	                  ↘ auth.TokenService / auth.PasswordService
//
// Services accept primitives and return domain errors (apperror kinds);
// they know nothing about GraphQL or HTTP. The transport maps the kinds to
// protocol-appropriate responses.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/auth"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/repository"
)

// Validation constants for registration input.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// emailRX is the shape check applied to emails: something@something.tld,
// no whitespace. Deliberately loose — real validation is sending a mail.
var emailRX = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// dummyHash is a valid bcrypt hash of a random string nobody knows.
// Authenticate compares against it when the user doesn't exist, so the
// found and not-found paths take the same wall-clock time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService owns credential registration, verification, and session
// issuance. Hashing happens here, explicitly, before a User is handed to
// the repository — no layer below ever sees a plaintext password.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by authentication operations: the user record plus
// the session token issued for it.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register validates signup input, persists the new user with a hashed
// password, and issues a session token.
//
// Validation runs in a fixed order and the first failure wins:
// username length, email shape, password length, then uniqueness.
//
// The uniqueness pre-check here exists for a friendlier error message; the
// collection's unique indexes are the source of truth. If two concurrent
// registrations race past the pre-check, the loser's insert comes back as
// a duplicate-key error, which the repository reports as the same conflict
// kind — callers can't tell the two cases apart, and shouldn't.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// Rune count, not byte count — "éé" is two characters, not four.
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters long", MinUsernameLength))
	}
	if !emailRX.MatchString(email) {
		return nil, apperror.ValidationFailed("email", "invalid email format")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters long", MinPasswordLength))
	}

	// Best-effort uniqueness pre-check on both identifiers.
	for _, identifier := range []string{username, email} {
		_, err := s.users.FindByUsernameOrEmail(ctx, identifier)
		switch {
		case err == nil:
			return nil, apperror.Conflict("username or email is already in use")
		case errors.Is(err, apperror.ErrNotFound):
			// free to use
		default:
			return nil, fmt.Errorf("service/auth: checking uniqueness: %w", err)
		}
	}

	// Hash before constructing the record — the repository only ever sees
	// the finished hash, never the plaintext.
	hash, err := s.passwords.Hash(password)
	if err != nil {
		// Over-length input is the caller's problem; anything else is an
		// internal hashing failure and must not read as bad input.
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperror.ValidationFailed("password", "password must be 72 bytes or fewer")
		}
		return nil, apperror.Dependency("could not hash password", err)
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		// A duplicate-key loss of the registration race arrives here as
		// ErrConflict and propagates as-is.
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID.Hex()),
		slog.String("username", user.Username),
	)

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, apperror.Dependency("could not issue session token", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// CurrentUser loads the account behind a validated session token's subject.
// A stale subject (account deleted after the token was issued) comes back
// as an auth failure, not a not-found — the session is simply no longer good.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.AuthFailed("session is no longer valid")
		}
		return nil, fmt.Errorf("service/auth: loading current user: %w", err)
	}
	return user, nil
}

// Authenticate verifies a username-or-email + password pair and issues a
// session token on success.
//
// Unknown identifier and wrong password both produce the same external
// error — the client can't probe which accounts exist. The internal
// distinction shows up only in debug logs. A bcrypt compare runs on both
// paths so they cost the same time.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, apperror.ValidationFailed("username", "username or email is required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	storedHash := dummyHash
	if user != nil {
		storedHash = user.Password
	}
	verifyErr := s.passwords.Verify(storedHash, password)

	if user == nil || verifyErr != nil {
		if user == nil {
			s.logger.Debug("login failed: user not found", slog.String("identifier", identifier))
		} else {
			s.logger.Debug("login failed: password mismatch", slog.String("userID", user.ID.Hex()))
		}
		return nil, apperror.AuthFailed("invalid username or password")
	}

	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, apperror.Dependency("could not issue session token", err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID.Hex()),
		slog.String("username", user.Username),
	)

	return &AuthResult{User: user, Token: token}, nil
}
