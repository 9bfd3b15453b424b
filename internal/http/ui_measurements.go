package httpx

import (
	"net/http"

	"github.com/limnolab/limno-ui-api/internal/service"
)

// AdminMeasurements renders the measurement editing screen.
func (h *UIHandlers) AdminMeasurements(w http.ResponseWriter, r *http.Request) {
	measurements, err := h.Measurements.List(r.Context(), h.session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, PageData{
		Page:  "page-admin-measurements",
		Title: "Manage measurements",
		Data:  measurements,
	})
}

// AdminMeasurementValueUpdate edits one reading in a sampling event.
func (h *UIHandlers) AdminMeasurementValueUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := service.UpdateValueInput{Value: r.PostFormValue("value")}
	if err := h.Measurements.UpdateValue(r.Context(), h.session(r), r.PathValue("id"), in); err != nil {
		h.fail(w, r, err)
		return
	}
	if IsHTMX(r) {
		SetHXTrigger(w, "measurements-changed", nil)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/manage-data/measurements", http.StatusSeeOther)
}
