package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// EmailService manages the SMTP sender configuration the backend uses for
// verification and password-recovery mail.
type EmailService struct {
	api gateway.Caller
}

// NewEmailService constructs a new EmailService.
func NewEmailService(api gateway.Caller) *EmailService {
	return &EmailService{api: api}
}

// EmailConfigInput carries the sender configuration form.
type EmailConfigInput struct {
	SenderEmail string `json:"sender_email"`
	SenderName  string `json:"sender_name"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

// Validate checks the sender configuration form.
func (in EmailConfigInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SenderEmail, validation.Required, is.Email),
		validation.Field(&in.SenderName, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// Get returns the configured senders. The backend keeps at most one but
// answers with a list.
func (s *EmailService) Get(ctx context.Context, sess domainauth.Session) ([]model.EmailConfig, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "email-sender-config", nil)
	return decodeResult[[]model.EmailConfig](res, err)
}

// Create stores a new sender configuration.
func (s *EmailService) Create(ctx context.Context, sess domainauth.Session, in EmailConfigInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := s.api.PostJSON(ctx, credentialFor(sess), "email-sender-config", in)
	return checkResult(res, err)
}

// Update modifies the sender configuration.
func (s *EmailService) Update(ctx context.Context, sess domainauth.Session, id string, in EmailConfigInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := s.api.PutJSON(ctx, credentialFor(sess), "email-sender-config/"+id, in)
	return checkResult(res, err)
}

// Delete removes the sender configuration.
func (s *EmailService) Delete(ctx context.Context, sess domainauth.Session, id string) error {
	res, err := s.api.Delete(ctx, credentialFor(sess), "email-sender-config/"+id)
	return checkResult(res, err)
}

// Decrypt asks the backend for the plaintext of a stored password so the
// admin panel can display it.
func (s *EmailService) Decrypt(ctx context.Context, sess domainauth.Session, encrypted string) (string, error) {
	res, err := s.api.PostJSON(ctx, credentialFor(sess), "email-sender-config/decrypt", map[string]string{"password": encrypted})
	return decodeResult[string](res, err)
}

// TestEmailInput carries the test-delivery form.
type TestEmailInput struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// Validate checks the test-delivery form.
func (in TestEmailInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Subject, validation.Required, validation.Length(1, 200)),
	)
}

// SendTest asks the backend to send a test message with the stored sender.
func (s *EmailService) SendTest(ctx context.Context, sess domainauth.Session, in TestEmailInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := s.api.PostJSON(ctx, credentialFor(sess), "email-sender-config/test-email", in)
	return checkResult(res, err)
}
