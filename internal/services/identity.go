package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/platform/ctxutil"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// IdentityService verifies bearer tokens issued by the platform's auth provider.
// Login and registration live elsewhere; this only turns a token into a user id.
type IdentityService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	IssueToken(userID uuid.UUID, ttl time.Duration) (string, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

type identityService struct {
	log          *logger.Logger
	jwtSecretKey []byte
}

func NewIdentityService(log *logger.Logger, jwtSecretKey string) (IdentityService, error) {
	if strings.TrimSpace(jwtSecretKey) == "" {
		return nil, fmt.Errorf("jwt secret key required")
	}
	return &identityService{
		log:          log.With("service", "IdentityService"),
		jwtSecretKey: []byte(jwtSecretKey),
	}, nil
}

func (s *identityService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		s.log.Debug("token rejected", "error", err)
		return ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return ctx, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

// IssueToken signs an HS256 token for userID. Used by local tooling and tests.
func (s *identityService) IssueToken(userID uuid.UUID, ttl time.Duration) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id required")
	}
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecretKey)
}
