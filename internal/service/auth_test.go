package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/reservetable/reservetable-go/internal/config"
	"github.com/reservetable/reservetable-go/internal/crypto"
	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/repository"
)

const testSecret = "test-secret"

// fakeUserStore is an in-memory UserStore mirroring the repository's
// behavior: case-insensitive unique emails and unique google ids.
type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	email := strings.ToLower(user.Email)
	for _, u := range f.users {
		if u.Email == email {
			return repository.ErrDuplicateEmail
		}
		if user.GoogleID != nil && u.GoogleID != nil && *u.GoogleID == *user.GoogleID {
			return repository.ErrDuplicateGoogle
		}
	}
	user.Email = email
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int64, name, phone string) error {
	if u, ok := f.users[id]; ok {
		u.Name, u.Phone = name, phone
	}
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	if u, ok := f.users[id]; ok {
		u.LastLogin = at
	}
	return nil
}

func (f *fakeUserStore) LinkGoogle(_ context.Context, id int64, googleID string) error {
	if u, ok := f.users[id]; ok {
		u.GoogleID = &googleID
		u.LoginMethod = model.LoginMethodGoogle
	}
	return nil
}

func (f *fakeUserStore) Promote(_ context.Context, user *model.User) error {
	if existing, err := f.GetByEmail(context.Background(), user.Email); err == nil {
		u := f.users[existing.ID]
		u.Name = user.Name
		u.PasswordHash = user.PasswordHash
		u.Role = user.Role
		user.ID = existing.ID
		return nil
	}
	return f.Create(context.Background(), user)
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestAuthService(store *fakeUserStore, policy config.GoogleLinkPolicy) *AuthService {
	return NewAuthService(store, testSecret, time.Hour, bcrypt.MinCost, policy)
}

func TestRegisterThenLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "Ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if reg.User.Role != model.RoleUser {
		t.Errorf("Register() role = %q, want %q", reg.User.Role, model.RoleUser)
	}
	if reg.User.LoginMethod != model.LoginMethodEmail {
		t.Errorf("Register() login method = %q, want %q", reg.User.LoginMethod, model.LoginMethodEmail)
	}
	if reg.User.Email != "ann@x.com" {
		t.Errorf("Register() email = %q, want lowercased", reg.User.Email)
	}

	login, err := svc.Login(ctx, model.LoginRequest{Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	claims, err := crypto.ValidateToken(login.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.UserID != reg.User.ID {
		t.Errorf("token UserID = %d, want %d", claims.UserID, reg.User.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), config.GoogleLinkReject)
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.RegisterRequest
		want error
	}{
		{"short name", model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"}, ErrNameTooShort},
		{"bad email", model.RegisterRequest{Name: "Ann", Email: "not-an-email", Password: "secret1"}, ErrEmailInvalid},
		{"short password", model.RegisterRequest{Name: "Ann", Email: "a@x.com", Password: "12345"}, ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), config.GoogleLinkReject)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "A@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, err := svc.Register(ctx, model.RegisterRequest{Name: "Bob", Email: "a@x.com", Password: "secret2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, model.LoginRequest{Email: "ann@x.com", Password: "wrong"})
	_, unknownEmail := svc.Login(ctx, model.LoginRequest{Email: "nobody@x.com", Password: "secret1"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownEmail)
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	store.users[reg.User.ID].LastLogin = time.Now().UTC().Add(-24 * time.Hour)
	before := store.users[reg.User.ID].LastLogin

	login, err := svc.Login(ctx, model.LoginRequest{Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if !login.User.LastLogin.After(before) {
		t.Error("Login() did not refresh LastLogin")
	}
}

func TestLoginWrongMethod(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	if _, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Bo", Email: "bo@x.com"}); err != nil {
		t.Fatalf("LoginWithGoogle() unexpected error: %v", err)
	}

	// A password login against a google-method account must not reveal the
	// login method.
	_, err := svc.Login(ctx, model.LoginRequest{Email: "bo@x.com", Password: "anything"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginWithGoogleFirstLoginCreatesUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	first, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Bo", Email: "bo@x.com"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() unexpected error: %v", err)
	}
	if first.User.LoginMethod != model.LoginMethodGoogle {
		t.Errorf("login method = %q, want %q", first.User.LoginMethod, model.LoginMethodGoogle)
	}
	if store.users[first.User.ID].PasswordHash != "" {
		t.Error("google user has a password hash")
	}

	second, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Bo", Email: "bo@x.com"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() second call unexpected error: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("second login user id = %d, want %d (no duplicate account)", second.User.ID, first.User.ID)
	}
	if len(store.users) != 1 {
		t.Errorf("store has %d users, want 1", len(store.users))
	}
}

func TestLoginWithGoogleEmailCollision(t *testing.T) {
	ctx := context.Background()

	t.Run("reject policy", func(t *testing.T) {
		store := newFakeUserStore()
		svc := newTestAuthService(store, config.GoogleLinkReject)

		if _, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"}); err != nil {
			t.Fatalf("Register() unexpected error: %v", err)
		}

		_, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Ann", Email: "ann@x.com"})
		if !errors.Is(err, ErrAccountConflict) {
			t.Errorf("LoginWithGoogle() error = %v, want ErrAccountConflict", err)
		}
	})

	t.Run("link policy", func(t *testing.T) {
		store := newFakeUserStore()
		svc := newTestAuthService(store, config.GoogleLinkLink)

		reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
		if err != nil {
			t.Fatalf("Register() unexpected error: %v", err)
		}

		resp, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Ann", Email: "ann@x.com"})
		if err != nil {
			t.Fatalf("LoginWithGoogle() unexpected error: %v", err)
		}
		if resp.User.ID != reg.User.ID {
			t.Errorf("linked user id = %d, want %d", resp.User.ID, reg.User.ID)
		}
		linked := store.users[reg.User.ID]
		if linked.GoogleID == nil || *linked.GoogleID != "g1" {
			t.Error("google id was not linked to the existing account")
		}
	})
}

func TestAuthenticate(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := svc.Authenticate(ctx, reg.Token)
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if user.ID != reg.User.ID {
		t.Errorf("Authenticate() user id = %d, want %d", user.ID, reg.User.ID)
	}

	store.users[reg.User.ID].IsActive = false
	if _, err := svc.Authenticate(ctx, reg.Token); !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("Authenticate() error = %v, want ErrAccountDisabled for deactivated user", err)
	}
}

func TestChangePassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	id := reg.User.ID

	err = svc.ChangePassword(ctx, id, model.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "secret2"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ChangePassword() error = %v, want ErrInvalidCredentials", err)
	}

	// Re-submitting the current password must not touch the stored hash.
	before := store.users[id].PasswordHash
	if err := svc.ChangePassword(ctx, id, model.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret1"}); err != nil {
		t.Fatalf("ChangePassword() unexpected error: %v", err)
	}
	if store.users[id].PasswordHash != before {
		t.Error("ChangePassword() re-hashed an unchanged password")
	}

	if err := svc.ChangePassword(ctx, id, model.ChangePasswordRequest{OldPassword: "secret1", NewPassword: "secret2"}); err != nil {
		t.Fatalf("ChangePassword() unexpected error: %v", err)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ann@x.com", Password: "secret2"}); err != nil {
		t.Errorf("Login() with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Email: "ann@x.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() with old password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("email method verifies password", func(t *testing.T) {
		store := newFakeUserStore()
		svc := newTestAuthService(store, config.GoogleLinkReject)

		reg, err := svc.Register(ctx, model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
		if err != nil {
			t.Fatalf("Register() unexpected error: %v", err)
		}

		err = svc.DeleteAccount(ctx, reg.User.ID, model.DeleteAccountRequest{Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("DeleteAccount() error = %v, want ErrInvalidCredentials", err)
		}

		if err := svc.DeleteAccount(ctx, reg.User.ID, model.DeleteAccountRequest{Password: "secret1"}); err != nil {
			t.Fatalf("DeleteAccount() unexpected error: %v", err)
		}
		if len(store.users) != 0 {
			t.Error("DeleteAccount() left the user in the store")
		}
	})

	t.Run("google method verifies subject id", func(t *testing.T) {
		store := newFakeUserStore()
		svc := newTestAuthService(store, config.GoogleLinkReject)

		resp, err := svc.LoginWithGoogle(ctx, model.GoogleLoginRequest{SubjectID: "g1", Name: "Bo", Email: "bo@x.com"})
		if err != nil {
			t.Fatalf("LoginWithGoogle() unexpected error: %v", err)
		}

		err = svc.DeleteAccount(ctx, resp.User.ID, model.DeleteAccountRequest{GoogleSubjectID: "g2"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("DeleteAccount() error = %v, want ErrInvalidCredentials", err)
		}

		if err := svc.DeleteAccount(ctx, resp.User.ID, model.DeleteAccountRequest{GoogleSubjectID: "g1"}); err != nil {
			t.Fatalf("DeleteAccount() unexpected error: %v", err)
		}
	})
}

func TestEnsureAdminIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store, config.GoogleLinkReject)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "Root", "admin@x.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdmin() unexpected error: %v", err)
	}

	admin, err := store.GetByEmail(ctx, "admin@x.com")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, model.RoleAdmin)
	}

	// Second run with the same password keeps the stored hash.
	before := admin.PasswordHash
	if err := svc.EnsureAdmin(ctx, "Root", "admin@x.com", "hunter22"); err != nil {
		t.Fatalf("EnsureAdmin() second run unexpected error: %v", err)
	}
	after, _ := store.GetByEmail(ctx, "admin@x.com")
	if after.PasswordHash != before {
		t.Error("EnsureAdmin() re-hashed an unchanged password")
	}
	if len(store.users) != 1 {
		t.Errorf("store has %d users, want 1", len(store.users))
	}

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "admin@x.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login() as admin unexpected error: %v", err)
	}
	if resp.User.Role != model.RoleAdmin {
		t.Errorf("admin login role = %q, want %q", resp.User.Role, model.RoleAdmin)
	}
}

func TestPublicViewOmitsPasswordHash(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), config.GoogleLinkReject)

	reg, err := svc.Register(context.Background(), model.RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	// UserResponse has no hash field at all; make sure nothing password-like
	// leaks through the generic marshaling either.
	if strings.Contains(strings.ToLower(reg.Token), "secret1") {
		t.Error("token embeds the plaintext password")
	}
	if reg.User.Email == "" || reg.User.Name == "" {
		t.Error("public view is missing expected fields")
	}
}
