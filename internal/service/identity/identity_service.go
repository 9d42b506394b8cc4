package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/repository"
	"github.com/sirupsen/logrus"
)

type IdentityUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, caller domain.Identity, id int64) error
}

type TokenIssuer interface {
	Issue(u *domain.User) (string, time.Time, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput fields left empty keep their current value.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     string
	Password string
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type IdentityService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
	log    *logrus.Logger
}

func NewIdentityService(users repository.UserRepository, tokens TokenIssuer, hasher PasswordHasher, log *logrus.Logger) *IdentityService {
	return &IdentityService{users: users, tokens: tokens, hasher: hasher, log: log}
}

var errInvalidCredentials = domain.Unauthorized("Invalid email or password.")

func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	email := domain.NormalizeEmail(input.Email)
	switch {
	case name == "":
		return nil, domain.Validation("Name is required")
	case email == "":
		return nil, domain.Validation("Email is required")
	case strings.TrimSpace(input.Password) == "":
		return nil, domain.Validation("Password is required")
	case len(input.Password) < domain.MinPasswordLength:
		return nil, domain.Validation("Password must be at least %d characters long", domain.MinPasswordLength)
	}

	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("User with this email already exists")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: domain.RoleUser}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")
	return s.issue(user)
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.log.WithField("user_id", user.ID).Warn("login with wrong password")
		return nil, errInvalidCredentials
	}
	return s.issue(user)
}

func (s *IdentityService) issue(user *domain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *IdentityService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *IdentityService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *IdentityService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := domain.NormalizeEmail(input.Email); email != "" {
		taken, err := s.users.EmailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Conflict("Email is already taken by another user")
		}
		user.Email = email
	}
	if role := strings.TrimSpace(input.Role); role != "" {
		if !domain.Role(role).Valid() {
			return nil, invalidRole()
		}
		user.Role = domain.Role(role)
	}
	if strings.TrimSpace(input.Password) != "" {
		if len(input.Password) < domain.MinPasswordLength {
			return nil, domain.Validation("Password must be at least %d characters long", domain.MinPasswordLength)
		}
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", id).Info("user updated")
	return user, nil
}

func (s *IdentityService) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, invalidRole()
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "role": role}).Info("user role changed")
	return user, nil
}

func (s *IdentityService) DeleteUser(ctx context.Context, caller domain.Identity, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.ID == caller.UserID || strings.EqualFold(user.Email, caller.Email) {
		return domain.Validation("Cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "by": caller.UserID}).Info("user deleted")
	return nil
}

func invalidRole() error {
	return domain.Validation("Invalid role. Valid roles are: %s, %s, %s", domain.RoleUser, domain.RoleAdmin, domain.RoleFlightowner)
}

var _ IdentityUseCase = (*IdentityService)(nil)
