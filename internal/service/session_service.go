package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"syllabus-builder/internal/config"
	"syllabus-builder/internal/dto"
	"syllabus-builder/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionService issues and checks the signed cookie that ties a browser to its workspace.
type SessionService interface {
	NewSession() (sessionID string, token string, err error)
	ValidateToken(tokenString string) (*dto.SessionClaims, error)
	TTL() time.Duration
}

type sessionServiceImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a SessionService. An empty secret is replaced by a random
// one, which invalidates sessions on restart.
func NewSessionService(cfg config.SessionConfig) (SessionService, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
		logger.Get().Warn("session.secret is not set, using a random secret for this process")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session.ttl must be positive")
	}
	return &sessionServiceImpl{secret: secret, ttl: cfg.TTL, now: time.Now}, nil
}

func (s *sessionServiceImpl) TTL() time.Duration {
	return s.ttl
}

func (s *sessionServiceImpl) NewSession() (string, string, error) {
	sessionID := uuid.NewString()
	now := s.now()
	claims := dto.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return sessionID, signed, nil
}

func (s *sessionServiceImpl) ValidateToken(tokenString string) (*dto.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Session token expired", zap.Error(err))
		} else {
			logger.Get().Warn("Session token rejected", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*dto.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidSessionToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, fmt.Errorf("%w: malformed session id", ErrInvalidSessionToken)
	}
	return claims, nil
}
