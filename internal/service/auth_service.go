package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"updatesfeed/internal/config"
	"updatesfeed/internal/repository"
	"updatesfeed/internal/session"
)

// AuthService is the live-session auth subsystem: password sign-in, sign-out
// and an asynchronous state-change stream the session gate subscribes to.
// Backend error messages are returned as-is so callers can surface them
// verbatim.
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, token string) error
	ValidateSession(token string) error
	Events() <-chan session.AuthEvent
}

type authService struct {
	ownerRepo repository.OwnerRepository
	cfg       *config.Config
	events    chan session.AuthEvent
}

func NewAuthService(ownerRepo repository.OwnerRepository, cfg *config.Config) AuthService {
	return &authService{
		ownerRepo: ownerRepo,
		cfg:       cfg,
		events:    make(chan session.AuthEvent, 16),
	}
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	owner, err := s.ownerRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", err)
	}

	token, err := s.generateSessionToken(owner.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	s.notify(session.AuthEvent{Event: session.EventSignedIn, Session: token})
	return token, nil
}

func (s *authService) SignOut(_ context.Context, token string) error {
	if err := s.ValidateSession(token); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}

	s.notify(session.AuthEvent{Event: session.EventSignedOut})
	return nil
}

func (s *authService) ValidateSession(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}

	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}

	return nil
}

func (s *authService) Events() <-chan session.AuthEvent {
	return s.events
}

func (s *authService) generateSessionToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.cfg.SessionDuration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// notify never blocks the sign-in path; a full channel drops the event, and
// the gate converges on the next one.
func (s *authService) notify(event session.AuthEvent) {
	select {
	case s.events <- event:
	default:
	}
}
