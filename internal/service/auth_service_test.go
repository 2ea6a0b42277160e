package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"stagetrack/backend/config"
	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/repository"
	"stagetrack/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *mockUserRepo, *jwt.Manager) {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-0123456789",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 168 * time.Hour,
		},
	}
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:       userRepo,
		Intern:     newMockInternRepo(),
		Project:    newMockProjectRepo(),
		Evaluation: newMockEvaluationRepo(),
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, userRepo, jwtMgr
}

func seedAdmin(t *testing.T, userRepo *mockUserRepo, email, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("密码哈希失败: %v", err)
	}
	user := &model.User{
		UserID:       "user-001",
		Name:         "Administrateur",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	userRepo.users[user.UserID] = user
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, jwtMgr := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stagetrack.local",
		Password: "motdepasse123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("期望返回 Token 对")
	}
	if result.User.Email != "admin@stagetrack.local" {
		t.Errorf("期望返回用户信息，实际=%+v", result.User)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != "user-001" {
		t.Errorf("Claims 不符: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stagetrack.local",
		Password: "mauvais",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "inconnu@stagetrack.local",
		Password: "motdepasse123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱应与密码错误同样返回 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stagetrack.local",
		Password: "motdepasse123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("期望返回新的 AccessToken")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stagetrack.local",
		Password: "motdepasse123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 AccessToken 冒充 RefreshToken
	_, err = svc.Refresh(context.Background(), login.AccessToken)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	user := seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")
	user.MustChangePassword = true

	err := svc.ChangePassword(context.Background(), "user-001", &dto.ChangePasswordRequest{
		OldPassword: "motdepasse123",
		NewPassword: "nouveaumotdepasse",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}
	if user.MustChangePassword {
		t.Error("改密后 MustChangePassword 应清除")
	}

	// 新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@stagetrack.local",
		Password: "nouveaumotdepasse",
	}); err != nil {
		t.Errorf("新密码登录应成功: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")

	err := svc.ChangePassword(context.Background(), "user-001", &dto.ChangePasswordRequest{
		OldPassword: "mauvais",
		NewPassword: "nouveaumotdepasse",
	})
	if !errors.Is(err, ErrOldPasswordWrong) {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// ── UpdateProfile 测试 ──

func TestAuthService_UpdateProfile_EmailTaken(t *testing.T) {
	svc, userRepo, _ := setupTestAuthService(t)
	seedAdmin(t, userRepo, "admin@stagetrack.local", "motdepasse123")
	userRepo.users["user-002"] = &model.User{
		UserID: "user-002",
		Email:  "autre@stagetrack.local",
		Role:   "admin",
	}

	taken := "autre@stagetrack.local"
	_, err := svc.UpdateProfile(context.Background(), "user-001", &dto.UpdateProfileRequest{Email: &taken})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}
