package service

import (
	"net/http"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// credentialFor extracts the gateway credential from a session.
func credentialFor(sess domainauth.Session) gateway.Credential {
	return gateway.Credential{Cookie: sess.BackendCookie}
}

// upstreamError translates a non-OK gateway result into the application
// error taxonomy. Callers should only invoke it when res.OK is false.
func upstreamError(res gateway.Result) error {
	msg := res.ErrorMessage()
	switch res.Status {
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(msg)
	case http.StatusForbidden:
		return apperrors.Forbidden(msg)
	case http.StatusNotFound:
		return apperrors.NotFound(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusConflict:
		return apperrors.Validation(msg)
	default:
		return apperrors.Upstreamf("backend returned %d: %s", res.Status, msg)
	}
}

// decodeResult decodes an OK result payload into T, or translates the
// failure. It keeps the per-endpoint service methods to one line of
// response handling.
func decodeResult[T any](res gateway.Result, err error) (T, error) {
	var out T
	if err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend unreachable")
	}
	if !res.OK {
		return out, upstreamError(res)
	}
	if len(res.Payload) == 0 {
		return out, nil
	}
	if decodeErr := res.Decode(&out); decodeErr != nil {
		return out, apperrors.Wrap(decodeErr, apperrors.ErrCodeUpstream, "decode backend payload")
	}
	return out, nil
}

// checkResult is decodeResult for endpoints whose payload we ignore.
func checkResult(res gateway.Result, err error) error {
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "backend unreachable")
	}
	if !res.OK {
		return upstreamError(res)
	}
	return nil
}
