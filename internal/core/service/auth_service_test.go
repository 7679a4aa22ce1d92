package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/pkg/digest"
)

type stubUserRepo struct {
	users          []*domain.User
	findByIDErr    error
	findByEmailErr error
	updateErr      error
	updatedDigests map[string]string
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	return &stubUserRepo{users: users, updatedDigests: make(map[string]string)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "user_" + strconv.Itoa(len(r.users)+1)
	}
	r.users = append(r.users, cloneUser(copy))
	return copy, nil
}

func (r *stubUserRepo) UpdateDigest(_ context.Context, id, newDigest string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, u := range r.users {
		if u.ID == id {
			u.PasswordDigest = newDigest
			r.updatedDigests[id] = newDigest
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func bcryptDigest(t *testing.T, password string) string {
	t.Helper()
	d, err := digest.Bcrypt(password)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return d
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		ID:             "u1",
		Email:          "admin@example.com",
		Name:           "Super Admin",
		PasswordDigest: bcryptDigest(t, "password123"),
		Role:           domain.RoleSuperadmin,
	})
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Authenticate(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.PasswordDigest != "" {
		t.Fatalf("expected sanitized user, digest leaked")
	}
	if user.Role != domain.RoleSuperadmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Authenticate_InvalidInput(t *testing.T) {
	repo := newStubUserRepo()
	repo.findByEmailErr = errors.New("lookup should not happen")
	svc := NewAuthService(repo, zerolog.Nop())

	cases := [][2]string{
		{"", "pass"},
		{"a@example.com", ""},
		{"   ", "pass"},
		{"a@example.com", "  \t"},
	}
	for _, tc := range cases {
		if _, err := svc.Authenticate(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q/%q, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAuthService_Authenticate_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Authenticate_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		ID:             "u1",
		Email:          "judge1@example.com",
		Name:           "Judge 1",
		PasswordDigest: bcryptDigest(t, "goodpass"),
		Role:           domain.RoleJudge,
	})
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "judge1@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreUnavailable(t *testing.T) {
	repo := newStubUserRepo()
	repo.findByEmailErr = fmt.Errorf("find user: %w: connection refused", domain.ErrStoreUnavailable)
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "a@example.com", "pass"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAuthService_Authenticate_UpgradesLegacyDigest(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		ID:             "u1",
		Email:          "admin@example.com",
		Name:           "Super Admin",
		PasswordDigest: digest.Legacy("password123"),
		Role:           domain.RoleSuperadmin,
	})
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.Authenticate(context.Background(), "admin@example.com", "password123"); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	upgraded, ok := repo.updatedDigests["u1"]
	if !ok {
		t.Fatalf("expected legacy digest to be rehashed")
	}
	if digest.NeedsUpgrade(upgraded) {
		t.Fatalf("rehashed digest is still legacy: %s", upgraded)
	}
	if !digest.Verify("password123", upgraded) {
		t.Fatalf("rehashed digest does not verify")
	}
}

func TestAuthService_Authenticate_UpgradeFailureDoesNotBlockLogin(t *testing.T) {
	repo := newStubUserRepo(&domain.User{
		ID:             "u1",
		Email:          "admin@example.com",
		Name:           "Super Admin",
		PasswordDigest: digest.Legacy("password123"),
		Role:           domain.RoleSuperadmin,
	})
	repo.updateErr = fmt.Errorf("update digest: %w", domain.ErrStoreUnavailable)
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.Authenticate(context.Background(), "admin@example.com", "password123")
	if err != nil {
		t.Fatalf("login should survive a failed migration, got %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_CreateUser_DefaultsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), "new@example.com", "New Judge", "pass", "")
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Role != domain.RoleJudge {
		t.Fatalf("expected judge default, got %s", user.Role)
	}
	if user.PasswordDigest != "" {
		t.Fatalf("expected sanitized user, digest leaked")
	}

	stored, err := repo.FindByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if digest.NeedsUpgrade(stored.PasswordDigest) {
		t.Fatalf("new accounts must use the bcrypt scheme")
	}
}

func TestAuthService_CreateUser_Duplicate(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u1", Email: "dup@example.com", Name: "Dup"})
	svc := NewAuthService(repo, zerolog.Nop())

	if _, err := svc.CreateUser(context.Background(), "dup@example.com", "Dup", "pass", domain.RoleJudge); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
