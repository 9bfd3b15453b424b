package httpx

import (
	"net/http"
	"strconv"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/service"
)

type auditPageData struct {
	Page     model.AuditPage
	Query    service.AuditQuery
	PrevPage int
	NextPage int
	HasPrev  bool
	HasNext  bool
}

// AdminAudit renders the request activity log with pagination controls.
func (h *UIHandlers) AdminAudit(w http.ResponseWriter, r *http.Request) {
	q := service.AuditQuery{UserID: r.URL.Query().Get("user_id")}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		q.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		q.Page = v
	}

	page, err := h.Audit.List(r.Context(), h.session(r), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	current := q.Page
	if current < 1 {
		current = 1
	}
	h.render(w, r, PageData{
		Page:  "page-admin-audit",
		Title: "Activity log",
		Data: auditPageData{
			Page:     page,
			Query:    q,
			PrevPage: current - 1,
			NextPage: current + 1,
			HasPrev:  current > 1,
			HasNext:  current < page.TotalPages,
		},
	})
}
