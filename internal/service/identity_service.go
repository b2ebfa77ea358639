package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/workflow-hub-api/internal/auth"
	"github.com/workflow-hub-api/internal/models"
	"github.com/workflow-hub-api/internal/repository"
	"github.com/workflow-hub-api/internal/validation"
)

// socialLoginSecret is hashed into the password column of social-only accounts.
// The value is public, so the password flow refuses it outright.
const socialLoginSecret = "SOCIAL_LOGIN_USER_PASS"

// identityService is the concrete implementation of IdentityService
type identityService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenManager
	log    zerolog.Logger
}

// newIdentityService creates a new IdentityService
func newIdentityService(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenManager, log zerolog.Logger) *identityService {
	return &identityService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.With().Str("service", "identity").Logger(),
	}
}

// Register creates a password account. No token is issued; the caller logs in separately.
func (s *identityService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if errs := validation.ValidateRegister(req); len(errs) > 0 {
		return newValidationError(errs)
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Registration lookup failed")
		return internalError()
	}
	if existing != nil {
		return newError(ErrConflict, "User already exists, please log in")
	}

	if req.Password == socialLoginSecret {
		return newValidationError([]validation.ValidationError{{Field: "password", Message: "password is not allowed"}})
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return newValidationError([]validation.ValidationError{{Field: "password", Message: "password must be at most 72 bytes"}})
	}
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Password hashing failed")
		return internalError()
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Username:     strings.TrimSpace(req.Username),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Another registration for the same email won the insert
		if errors.Is(err, repository.ErrDuplicate) {
			return newError(ErrConflict, "User already exists, please log in")
		}
		s.log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return internalError()
	}

	s.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User registered")
	return nil
}

// Login verifies a password and issues a session token
func (s *identityService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResult, error) {
	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Login lookup failed")
		return nil, internalError()
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not found")
	}

	// Social-only accounts hold a hash of the sentinel; it must never verify here
	if req.Password == socialLoginSecret {
		s.log.Warn().Int64("user_id", user.ID).Msg("Login rejected: social login sentinel submitted as password")
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("Stored password hash is unreadable")
		return nil, internalError()
	}
	if !ok {
		s.log.Info().Str("email", req.Email).Msg("Login rejected: bad credentials")
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		return nil, internalError()
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return &models.LoginResult{Success: true, Token: token, User: user.Profile()}, nil
}

// SocialLogin resolves an identity asserted by the social provider, provisioning
// the account on first sight
func (s *identityService) SocialLogin(ctx context.Context, req *models.SocialLoginRequest) (*models.SocialLoginResult, error) {
	if errs := validation.ValidateSocialLogin(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Social login lookup failed")
		return nil, internalError()
	}

	isNewUser := false
	if user == nil {
		user, isNewUser, err = s.provisionSocialUser(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to issue token")
		return nil, internalError()
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Bool("new_user", isNewUser).
		Msg("Social login completed")

	return &models.SocialLoginResult{
		Success:   true,
		Token:     token,
		IsNewUser: isNewUser,
		User:      user.Profile(),
		UserID:    user.ID,
	}, nil
}

// provisionSocialUser creates the account just in time. If a concurrent login
// for the same email inserts first, the existing row is re-read once and the
// caller is treated as a returning user.
func (s *identityService) provisionSocialUser(ctx context.Context, req *models.SocialLoginRequest) (*models.User, bool, error) {
	hash, err := s.hasher.Hash(socialLoginSecret)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to hash social login secret")
		return nil, false, internalError()
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Username:     socialUsername(req),
	}
	err = s.users.Create(ctx, user)
	if err == nil {
		s.log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("Provisioned social login user")
		return user, true, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Failed to provision social login user")
		return nil, false, internalError()
	}

	s.log.Info().Str("email", req.Email).Msg("Lost provisioning race, re-reading user")
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", req.Email).Msg("Re-read after duplicate insert failed")
		return nil, false, internalError()
	}
	if existing == nil {
		s.log.Error().Str("email", req.Email).Msg("Duplicate insert reported but user is missing")
		return nil, false, internalError()
	}
	return existing, false, nil
}

// socialUsername picks the display name, the email local part, then a generated name
func socialUsername(req *models.SocialLoginRequest) string {
	if name := strings.TrimSpace(req.DisplayName); name != "" {
		return name
	}
	if local := validation.EmailLocalPart(req.Email); local != "" {
		return local
	}
	return "user-" + uuid.NewString()[:8]
}

// ForgotPassword acknowledges a reset request. Nothing is sent.
func (s *identityService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", newValidationError([]validation.ValidationError{{Field: "email", Message: "email is required"}})
	}
	s.log.Info().Str("email", email).Msg("Password reset requested (delivery not implemented)")
	return "If an account exists for " + email + ", a reset link will be sent", nil
}
