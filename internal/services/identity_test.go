package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/practice-backend/internal/platform/ctxutil"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

func newIdentity(t *testing.T, secret string) IdentityService {
	t.Helper()
	svc, err := NewIdentityService(logger.Nop(), secret)
	if err != nil {
		t.Fatalf("NewIdentityService: %v", err)
	}
	return svc
}

func TestIdentityRoundTrip(t *testing.T) {
	svc := newIdentity(t, "s3cret")
	userID := uuid.New()
	tok, err := svc.IssueToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	ctx, err := svc.SetContextFromToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID != userID {
		t.Fatalf("request data = %+v, want user %s", rd, userID)
	}
}

func TestIdentityRejects(t *testing.T) {
	svc := newIdentity(t, "s3cret")
	other := newIdentity(t, "other")
	userID := uuid.New()

	foreign, _ := other.IssueToken(userID, time.Hour)
	noExpiry, _ := svc.IssueToken(userID, 0)
	expiredClaims := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("s3cret"))
	badSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: "not-a-uuid",
	}}).SignedString([]byte("s3cret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject: userID.String(),
	}}).SignedString([]byte("s3cret"))

	cases := map[string]string{
		"empty":        "",
		"garbage":      "abc.def.ghi",
		"wrong secret": foreign,
		"expired":      expired,
		"bad subject":  badSubject,
		"wrong alg":    hs512,
	}
	if _, err := svc.SetContextFromToken(context.Background(), noExpiry); err != nil {
		t.Fatalf("token without exp should verify: %v", err)
	}
	for name, tok := range cases {
		if _, err := svc.SetContextFromToken(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewIdentityServiceRequiresSecret(t *testing.T) {
	if _, err := NewIdentityService(logger.Nop(), " "); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}
