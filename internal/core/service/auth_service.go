package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

const (
	verifyPurpose  = "verify_email"
	verifyTokenTTL = 24 * time.Hour
	minPasswordLen = 8
	// bcrypt rejects longer inputs; the limit is in bytes, not characters.
	maxPasswordBytes = 72
)

// AuthService implements registration, login and email verification.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionAuthenticator
	notifier ports.Notifier
	secret   []byte
	baseURL  string
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionAuthenticator,
	notifier ports.Notifier,
	jwtSecret, baseURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		notifier: notifier,
		secret:   []byte(jwtSecret),
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// verifyClaims are carried by email verification links.
type verifyClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Register creates an unverified account with the intermediate USER role and
// queues a verification email. Mail problems never fail the registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.Invalidf("email must be a valid email address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalidf("password must be at least %d characters", minPasswordLen)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.Invalidf("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Username:     strings.TrimSpace(in.Username),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	identity := domain.IdentityOf(created)
	if link, err := s.verificationLink(created.ID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", created.ID).Msg("verification link not generated")
	} else {
		s.notifier.Notify(domain.VerificationNotification(created.Email, identity.DisplayName(), link))
	}

	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return identity, nil
}

// Login checks credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, Identity: domain.IdentityOf(user)}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DestroySession(ctx, token)
}

func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.sessions.DestroyAllSessions(ctx, userID)
}

// VerifyEmail validates a verification token and flags the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims := &verifyClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Purpose != verifyPurpose {
		return domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.ErrInvalidToken
	}
	if err := s.users.MarkEmailVerified(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidToken
		}
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("email verified")
	return nil
}

func (s *AuthService) verificationLink(userID int64) (string, error) {
	now := time.Now()
	claims := verifyClaims{
		Purpose: verifyPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(verifyTokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/v1/auth/verify?token=" + url.QueryEscape(signed), nil
}

var _ ports.AuthService = (*AuthService)(nil)
