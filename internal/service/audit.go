package service

import (
	"context"
	"net/url"
	"strconv"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// AuditService reads the backend's request log.
type AuditService struct {
	api gateway.Caller
}

// NewAuditService constructs a new AuditService.
func NewAuditService(api gateway.Caller) *AuditService {
	return &AuditService{api: api}
}

// AuditQuery filters and paginates the audit log.
type AuditQuery struct {
	UserID string
	Limit  int
	Page   int
}

func (q AuditQuery) values() url.Values {
	v := url.Values{}
	if q.UserID != "" {
		v.Set("user_id", q.UserID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	v.Set("limit", strconv.Itoa(limit))
	v.Set("page", strconv.Itoa(page))
	return v
}

// List returns one page of audit entries.
func (s *AuditService) List(ctx context.Context, sess domainauth.Session, q AuditQuery) (model.AuditPage, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "logs", q.values())
	return decodeResult[model.AuditPage](res, err)
}
