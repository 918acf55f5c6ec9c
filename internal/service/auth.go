package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/reservetable/reservetable-go/internal/config"
	"github.com/reservetable/reservetable-go/internal/crypto"
	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/repository"
)

var (
	ErrNameTooShort          = errors.New("name must be at least 2 characters")
	ErrEmailInvalid          = errors.New("a valid email is required")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrEmailTaken            = errors.New("email already taken")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountConflict       = errors.New("an account with this email already exists")
	ErrAccountDisabled       = errors.New("account is deactivated")
	ErrUserNotFound          = errors.New("user not found")
	ErrGoogleSubjectRequired = errors.New("google subject id is required")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// UserStore defines the persistence operations AuthService depends on.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phone string) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	LinkGoogle(ctx context.Context, id int64, googleID string) error
	Promote(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// AuthService handles account lifecycle and authentication business logic.
type AuthService struct {
	users      UserStore
	jwtSecret  string
	jwtExpiry  time.Duration
	bcryptCost int
	linkPolicy config.GoogleLinkPolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration, bcryptCost int, linkPolicy config.GoogleLinkPolicy) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  secret,
		jwtExpiry:  expiry,
		bcryptCost: bcryptCost,
		linkPolicy: linkPolicy,
	}
}

// Register creates a new email-method account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(name) < 2 {
		return model.AuthResponse{}, ErrNameTooShort
	}
	if !emailPattern.MatchString(email) {
		return model.AuthResponse{}, ErrEmailInvalid
	}
	if len(req.Password) < 6 {
		return model.AuthResponse{}, ErrPasswordTooShort
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		LoginMethod:  model.LoginMethodEmail,
		Role:         model.RoleUser,
		IsActive:     true,
		LastLogin:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	return s.respondWithToken(user)
}

// Login authenticates an email-method account. Unknown email, wrong login
// method, and wrong password all produce the same ErrInvalidCredentials so
// callers cannot probe which factor failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if user.LoginMethod != model.LoginMethodEmail || !user.IsActive {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if err := s.touchLastLogin(ctx, user); err != nil {
		return model.AuthResponse{}, err
	}

	return s.respondWithToken(user)
}

// LoginWithGoogle signs in a user backed by a verified Google identity
// assertion, creating the account on first login. A collision with an
// existing email-method account is resolved by the configured link policy.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req model.GoogleLoginRequest) (model.AuthResponse, error) {
	if req.SubjectID == "" {
		return model.AuthResponse{}, ErrGoogleSubjectRequired
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		return model.AuthResponse{}, ErrEmailInvalid
	}

	user, err := s.users.GetByGoogleID(ctx, req.SubjectID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	if user == nil {
		user, err = s.findOrCreateGoogleUser(ctx, req.SubjectID, req.Name, email)
		if err != nil {
			return model.AuthResponse{}, err
		}
	}

	if !user.IsActive {
		return model.AuthResponse{}, ErrAccountDisabled
	}

	if err := s.touchLastLogin(ctx, user); err != nil {
		return model.AuthResponse{}, err
	}

	return s.respondWithToken(user)
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, subjectID, name, email string) (*model.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.LoginMethod == model.LoginMethodEmail && s.linkPolicy != config.GoogleLinkLink {
			return nil, ErrAccountConflict
		}
		if err := s.users.LinkGoogle(ctx, existing.ID, subjectID); err != nil {
			return nil, err
		}
		existing.LoginMethod = model.LoginMethodGoogle
		existing.GoogleID = &subjectID
		return existing, nil
	}

	name = strings.TrimSpace(name)
	if len(name) < 2 {
		name = email
	}

	user := &model.User{
		Name:        name,
		Email:       email,
		LoginMethod: model.LoginMethodGoogle,
		GoogleID:    &subjectID,
		Role:        model.RoleUser,
		IsActive:    true,
		LastLogin:   time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a bearer token to a live user record, re-checking
// role and activation status against the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

// GetUser retrieves a user by ID and returns the public view.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return user.PublicView(), nil
}

// UpdateProfile changes a user's name and phone.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return model.UserResponse{}, ErrNameTooShort
	}

	if err := s.users.UpdateProfile(ctx, userID, name, strings.TrimSpace(req.Phone)); err != nil {
		return model.UserResponse{}, err
	}

	return s.GetUser(ctx, userID)
}

// ChangePassword replaces an email-method user's password after verifying
// the old one. Saving an unchanged password is a no-op rather than a
// re-hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.LoginMethod != model.LoginMethodEmail {
		return ErrInvalidCredentials
	}
	if !crypto.VerifyPassword(req.OldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(req.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	// Unchanged password: nothing to store.
	if crypto.VerifyPassword(req.NewPassword, user.PasswordHash) {
		return nil
	}

	hash, err := crypto.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hash)
}

// DeleteAccount removes a user after a confirmation step: the current
// password for email-method accounts, or a re-asserted Google subject id
// for google-method accounts.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64, req model.DeleteAccountRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	switch user.LoginMethod {
	case model.LoginMethodEmail:
		if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
			return ErrInvalidCredentials
		}
	case model.LoginMethodGoogle:
		if user.GoogleID == nil || req.GoogleSubjectID == "" || req.GoogleSubjectID != *user.GoogleID {
			return ErrInvalidCredentials
		}
	default:
		return ErrInvalidCredentials
	}

	return s.users.Delete(ctx, userID)
}

// EnsureAdmin upserts the bootstrap admin account identified by email.
// Safe to run on every startup: the password is only re-hashed when the
// configured value differs from the stored hash's preimage.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}

	hash := ""
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if existing != nil && crypto.VerifyPassword(password, existing.PasswordHash) {
		hash = existing.PasswordHash
	}

	if hash == "" {
		hash, err = crypto.HashPassword(password, s.bcryptCost)
		if err != nil {
			return err
		}
	}

	admin := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		LoginMethod:  model.LoginMethodEmail,
		Role:         model.RoleAdmin,
		IsActive:     true,
		LastLogin:    time.Now().UTC(),
	}

	return s.users.Promote(ctx, admin)
}

func (s *AuthService) touchLastLogin(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return err
	}
	user.LastLogin = now
	return nil
}

func (s *AuthService) respondWithToken(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User:  user.PublicView(),
	}, nil
}
