package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// AccountService covers the self-service account flows that run without a
// session: registration, email verification, and password recovery. These
// endpoints are public on the backend, so calls go out without a credential.
type AccountService struct {
	api gateway.Caller
}

// NewAccountService constructs a new AccountService.
func NewAccountService(api gateway.Caller) *AccountService {
	return &AccountService{api: api}
}

// Backend enumerations for newly registered accounts: pending-verification
// status and the regular-user role.
const (
	signUpPendingStatus = 4
	signUpUserRoleID    = 2
)

// SignUpInput carries the registration form.
type SignUpInput struct {
	FullName    string
	Email       string
	Password    string
	Nationality string
}

// Validate checks the registration form.
func (in SignUpInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 150)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&in.Nationality, validation.Required),
	)
}

// SignUp registers a new account. The backend mails a verification link.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	body := map[string]any{
		"email":             in.Email,
		"password":          in.Password,
		"full_name":         in.FullName,
		"nationality":       in.Nationality,
		"status":            signUpPendingStatus,
		"verification_code": "",
		"role_id":           signUpUserRoleID,
	}
	res, err := s.api.PostJSON(ctx, gateway.Credential{}, "users/signUp", body)
	return checkResult(res, err)
}

// Confirm completes email verification for a registration token.
func (s *AccountService) Confirm(ctx context.Context, token string) error {
	res, err := s.api.Get(ctx, gateway.Credential{}, "users/confirm/"+token, nil)
	return checkResult(res, err)
}

// ResendVerification asks the backend to mail the verification link again.
func (s *AccountService) ResendVerification(ctx context.Context, email, fullName, userID string) error {
	body := map[string]string{
		"email":     email,
		"full_name": fullName,
		"user_id":   userID,
	}
	res, err := s.api.PostJSON(ctx, gateway.Credential{}, "users/send-email-verification", body)
	return checkResult(res, err)
}

// RequestPasswordRecovery mails a reset link to the given address.
func (s *AccountService) RequestPasswordRecovery(ctx context.Context, email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return err
	}
	res, err := s.api.PostJSON(ctx, gateway.Credential{}, "users/send-password-recovery-email", map[string]string{"email": email})
	return checkResult(res, err)
}

// ResetPassword sets a new password using a recovery token.
func (s *AccountService) ResetPassword(ctx context.Context, token, password string) error {
	if err := validation.Validate(password, validation.Required, validation.Length(8, 128)); err != nil {
		return err
	}
	res, err := s.api.PostJSON(ctx, gateway.Credential{}, "users/reset-password/"+token, map[string]string{"password": password})
	return checkResult(res, err)
}

// TokenExpired reports whether a recovery token has already lapsed.
func (s *AccountService) TokenExpired(ctx context.Context, token string) (bool, error) {
	res, err := s.api.Get(ctx, gateway.Credential{}, "users/token-expired/"+token, nil)
	if err != nil {
		return true, checkResult(res, err)
	}
	// The backend answers 200 while the token is live and 410 once it
	// lapses; other failures surface as errors.
	if res.OK {
		return false, nil
	}
	if res.Status == 410 || res.Status == 400 {
		return true, nil
	}
	return true, upstreamError(res)
}

// Countries lists nationalities for the registration form.
func (s *AccountService) Countries(ctx context.Context) ([]model.Country, error) {
	res, err := s.api.Get(ctx, gateway.Credential{}, "users/all/countries", nil)
	return decodeResult[[]model.Country](res, err)
}
