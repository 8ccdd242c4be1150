package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/email"
	"github.com/ErlanBelekov/jobs-api/internal/metrics"
	"github.com/ErlanBelekov/jobs-api/internal/password"
	"github.com/ErlanBelekov/jobs-api/internal/repository"
	"github.com/go-playground/validator/v10"
)

const (
	minNameLen     = 3
	maxNameLen     = 50
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt input limit, in bytes
)

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type tokenIssuer interface {
	Issue(userID, name string) (string, error)
}

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   passwordHasher
	tokens   tokenIssuer
	email    email.Sender
	validate *validator.Validate
	logger   *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher passwordHasher, tokens tokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		email:    emailSender,
		validate: validator.New(),
		logger:   logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validate expects a trimmed, lowercased email. The email rule rejects
// display names and comments, so only a bare address is ever stored.
func (in RegisterInput) validate(v *validator.Validate) error {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return domain.NewValidationError("Please provide name, email and password")
	}
	if n := len([]rune(in.Name)); n < minNameLen || n > maxNameLen {
		return domain.NewValidationError("name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	if err := v.Var(in.Email, "email"); err != nil {
		return domain.NewValidationError("Please provide a valid email")
	}
	if len(in.Password) < minPasswordLen {
		return domain.NewValidationError("password must be at least %d characters", minPasswordLen)
	}
	if len(in.Password) > maxPasswordLen {
		return domain.NewValidationError("password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}

// Register stores a bcrypt hash of the password, never the password itself,
// and returns the new user with a fresh token.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := input.validate(u.validate); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.AuthEventsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	tok, err := u.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	// Best effort: the account exists whether or not the mail goes out.
	if err := u.email.Send(ctx, user.Email, email.WelcomeSubject, email.WelcomeBody(user.Name)); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "error", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("register", "success").Inc()
	return &AuthResult{User: user, Token: tok}, nil
}

// Login answers domain.ErrInvalidCredentials for both an unknown email and a
// wrong password. The unknown-email path still runs a bcrypt comparison.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, pw string) (*AuthResult, error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || pw == "" {
		return nil, domain.NewValidationError("Please provide email and password")
	}

	var hash string
	user, err := u.users.FindByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		hash = user.PasswordHash
	case errors.Is(err, domain.ErrUserNotFound):
		// hash stays empty; Compare burns the same time and fails.
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := u.hasher.Compare(hash, pw); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			metrics.AuthEventsTotal.WithLabelValues("login", "failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := u.tokens.Issue(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.AuthEventsTotal.WithLabelValues("login", "success").Inc()
	return &AuthResult{User: user, Token: tok}, nil
}
