package service

import (
	"context"
	"strings"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// ChatService relays assistant questions to the backend's chat endpoint.
type ChatService struct {
	api gateway.Caller
}

// NewChatService constructs a new ChatService.
func NewChatService(api gateway.Caller) *ChatService {
	return &ChatService{api: api}
}

// Ask sends one message and returns the assistant's reply.
func (s *ChatService) Ask(ctx context.Context, sess domainauth.Session, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.ValidationField("message", "cannot be blank")
	}
	res, err := s.api.PostJSON(ctx, credentialFor(sess), "gemini/chat", map[string]string{"message": message})
	return decodeResult[string](res, err)
}
