package service

import (
	"strings"

	"go.uber.org/zap"

	dairyerr "github.com/amterp/dairy/internal/errors"
	"github.com/amterp/dairy/internal/store"
)

// Session identifies a logged-in user.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// AuthService checks credentials against the per-role login files.
type AuthService struct {
	staff  store.CredentialStore
	owner  store.CredentialStore
	logger *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(staff, owner store.CredentialStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{staff: staff, owner: owner, logger: logger}
}

// SignUp registers a staff login. Owners can't sign up; their logins are
// provisioned by editing the owner file.
func (s *AuthService) SignUp(username, password string) error {
	if err := validateCredential("username", username); err != nil {
		return err
	}
	if err := validateCredential("password", password); err != nil {
		return err
	}

	exists, err := s.staff.Exists(username)
	if err != nil {
		return err
	}
	if exists {
		return dairyerr.UserAlreadyExists(username)
	}

	if err := s.staff.Append(username, password); err != nil {
		return err
	}
	s.logger.Info("staff signed up", zap.String("username", username))
	return nil
}

// Login validates a username and password for role.
func (s *AuthService) Login(role Role, username, password string) (*Session, error) {
	creds, err := s.credentials(role)
	if err != nil {
		return nil, err
	}

	ok, err := creds.Validate(username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn("login failed", zap.String("role", string(role)), zap.String("username", username))
		return nil, &dairyerr.UnauthorizedError{Username: username}
	}
	return &Session{Username: username, Role: role}, nil
}

func (s *AuthService) credentials(role Role) (store.CredentialStore, error) {
	switch role {
	case RoleStaff:
		return s.staff, nil
	case RoleOwner:
		return s.owner, nil
	}
	return nil, dairyerr.InvalidField("role", string(role)+" is not a known role")
}

// validateCredential rejects values the two-column file can't hold.
func validateCredential(field, value string) error {
	if value == "" {
		return dairyerr.RequiredField(field)
	}
	if strings.ContainsAny(value, ",\r\n") {
		return dairyerr.InvalidField(field, "must not contain commas or line breaks")
	}
	return nil
}
