package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/yanisbelkaid/intervia-backend/pkg/auth"
	"github.com/yanisbelkaid/intervia-backend/pkg/auth/session"
	"github.com/yanisbelkaid/intervia-backend/pkg/config"
	"github.com/yanisbelkaid/intervia-backend/pkg/db/models"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
	"github.com/yanisbelkaid/intervia-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "intervia",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginIssuesRoleClaim(t *testing.T) {
	password := "agency-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "agence@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleAgency,
		IsActive:     true,
	}
	cfg := testJWTConfig()

	svc, _, err := buildTestService(user, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleAgency {
		t.Fatalf("expected agency role claim, got %s", claims.Role)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if resp.RefreshToken == "" {
		t.Fatalf("expected refresh token to be set")
	}
	if resp.User == nil || resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be stamped")
	}
}

func TestServiceLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc, _, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginWrongPasswordIsUnauthorized(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "agence@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.UserRoleAgency,
		IsActive:     true,
	}
	svc, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginInactiveUserIsUnauthorized(t *testing.T) {
	password := "still-knows-it"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "gone@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.UserRoleContractor,
		IsActive:     false,
	}
	svc, _, err := buildTestService(user, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceRefreshInvalidTokenIsUnauthorized(t *testing.T) {
	svc, sessionMgr, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	sessionMgr.rotateErr = session.ErrInvalidRefreshToken

	token, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAgency,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  token,
		RefreshToken: "stale",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceRefreshRotatesPair(t *testing.T) {
	cfg := testJWTConfig()
	svc, sessionMgr, err := buildTestService(nil, cfg)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	sessionMgr.rotatedAccessID = "jti-2"
	sessionMgr.rotatedRefresh = "fresh-refresh"

	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleContractor,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  token,
		RefreshToken: "old-refresh",
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken != "fresh-refresh" {
		t.Fatalf("expected rotated refresh token, got %q", pair.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, pair.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != "jti-2" {
		t.Fatalf("expected rotated jti, got %q", claims.ID)
	}
	if claims.UserID != userID || claims.Role != enums.UserRoleContractor {
		t.Fatalf("rotated claims lost identity: %+v", claims)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, sessionMgr, err := buildTestService(nil, testJWTConfig())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Logout(context.Background(), "jti-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessionMgr.revoked != "jti-1" {
		t.Fatalf("expected session jti-1 revoked, got %q", sessionMgr.revoked)
	}

	err = svc.Logout(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank session, got %v", err)
	}
}

func buildTestService(user *models.User, jwtCfg config.JWTConfig) (Service, *stubSessionManager, error) {
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user},
		SessionManager: sessionMgr,
		JWTConfig:      jwtCfg,
	})
	return svc, sessionMgr, err
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

type stubUserRepo struct {
	user *models.User
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken    string
	rotatedAccessID string
	rotatedRefresh  string
	rotateErr       error
	revoked         string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.rotatedAccessID, s.rotatedRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}
