package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"rabbit-catalog/internal/domain"
	"rabbit-catalog/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func newTestUserService() (UserService, *mockUserRepository, *mockRefreshTokenRepository) {
	users := newMockUserRepository()
	tokens := newMockRefreshTokenRepository()
	return NewUserService(users, tokens, "test-secret"), users, tokens
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, users, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "breeder@example.com", "carrots-and-hay", "Jane", "Doe")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored := users.users[user.Email]
	if stored.PasswordHash == "carrots-and-hay" {
		t.Fatal("password must not be stored as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("carrots-and-hay")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if stored.Role != "user" {
		t.Fatalf("new accounts start as plain users, got %q", stored.Role)
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "breeder@example.com", "password123", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, "breeder@example.com", "different456", "John", "Doe")
	if !errors.Is(err, repository.ErrUserAlreadyExists) {
		t.Fatalf("expected duplicate email rejection, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "breeder@example.com", "carrots-and-hay", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}

	accessToken, refreshToken, user, err := svc.Login(ctx, "breeder@example.com", "carrots-and-hay")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("login must return both tokens")
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != user.Role {
		t.Fatalf("claims do not match the account: %+v", claims)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "breeder@example.com", "carrots-and-hay", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := svc.Login(ctx, "breeder@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail with invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody@example.com", "carrots-and-hay"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should fail with invalid credentials, got %v", err)
	}
}

func TestRefreshToken_IssuesNewAccessToken(t *testing.T) {
	svc, _, tokens := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "breeder@example.com", "carrots-and-hay", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}
	_, refreshToken, _, err := svc.Login(ctx, "breeder@example.com", "carrots-and-hay")
	if err != nil {
		t.Fatal(err)
	}

	newAccess, err := svc.RefreshToken(ctx, refreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := svc.ValidateToken(newAccess); err != nil {
		t.Fatalf("refreshed access token does not validate: %v", err)
	}

	// Expired refresh tokens are rejected
	tokens.tokens[refreshToken].ExpiresAt = time.Now().Add(-time.Hour)
	if _, err := svc.RefreshToken(ctx, refreshToken); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected token expired, got %v", err)
	}
}

func TestLogout_RevokesAndToleratesUnknown(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "breeder@example.com", "carrots-and-hay", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}
	_, refreshToken, _, err := svc.Login(ctx, "breeder@example.com", "carrots-and-hay")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx, refreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, refreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token should not refresh, got %v", err)
	}

	// Logging out with a token nobody has counts as already logged out
	if err := svc.Logout(ctx, "never-issued"); err != nil {
		t.Fatalf("unknown token logout should succeed, got %v", err)
	}
}

func TestEnsureAdmin_CreatesOnceAndLeavesExisting(t *testing.T) {
	svc, users, _ := newTestUserService()
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "super-secret"); err != nil {
		t.Fatalf("ensure admin failed: %v", err)
	}

	admin := users.users["admin@example.com"]
	if admin == nil || admin.Role != "admin" {
		t.Fatalf("admin account not provisioned: %+v", admin)
	}
	firstID := admin.ID

	// Second run must not recreate or touch the account
	if err := svc.EnsureAdmin(ctx, "admin@example.com", "different-password"); err != nil {
		t.Fatalf("second ensure admin failed: %v", err)
	}
	if users.users["admin@example.com"].ID != firstID {
		t.Fatal("existing admin account was replaced")
	}
}
