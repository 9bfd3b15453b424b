package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/gateway"
	"github.com/limnolab/limno-ui-api/internal/mocks"
)

func validEmailConfig() EmailConfigInput {
	return EmailConfigInput{
		SenderEmail: "noreply@limnolab.org",
		SenderName:  "LimnoLab",
		Username:    "noreply@limnolab.org",
		Password:    "app-password",
	}
}

func TestEmailService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewEmailService(api)

	api.EXPECT().
		Get(gomock.Any(), gomock.Any(), "email-sender-config", nil).
		Return(okResult(`[{"id":1,"sender_email":"noreply@limnolab.org","sender_name":"LimnoLab"}]`), nil)

	configs, err := svc.Get(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "noreply@limnolab.org", configs[0].SenderEmail)
}

func TestEmailService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewEmailService(api)

	api.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), "email-sender-config", validEmailConfig()).
		Return(okResult(`{"id":1}`), nil)

	err := svc.Create(context.Background(), testSession(), validEmailConfig())
	require.NoError(t, err)
}

func TestEmailService_Create_ValidatesSenderEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewEmailService(mocks.NewMockCaller(ctrl))

	in := validEmailConfig()
	in.SenderEmail = "not-an-address"
	err := svc.Create(context.Background(), testSession(), in)
	require.Error(t, err)
}

func TestEmailService_Decrypt(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewEmailService(api)

	api.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), "email-sender-config/decrypt", map[string]string{"password": "ciphertext"}).
		Return(okResult(`"app-password"`), nil)

	plain, err := svc.Decrypt(context.Background(), testSession(), "ciphertext")
	require.NoError(t, err)
	assert.Equal(t, "app-password", plain)
}

func TestEmailService_SendTest(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewEmailService(api)

	in := TestEmailInput{Email: "pat@example.org", Subject: "Delivery check"}
	api.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), "email-sender-config/test-email", in).
		Return(okResult(`{}`), nil)

	require.NoError(t, svc.SendTest(context.Background(), testSession(), in))
}

func TestEmailService_SendTest_UpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockCaller(ctrl)
	svc := NewEmailService(api)

	api.EXPECT().
		PostJSON(gomock.Any(), gomock.Any(), "email-sender-config/test-email", gomock.Any()).
		Return(gateway.Result{OK: false, Status: http.StatusBadGateway, Message: "smtp connect failed"}, nil)

	err := svc.SendTest(context.Background(), testSession(), TestEmailInput{Email: "pat@example.org", Subject: "Delivery check"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}
