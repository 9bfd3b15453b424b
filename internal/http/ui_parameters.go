package httpx

import (
	"net/http"

	"github.com/limnolab/limno-ui-api/internal/service"
)

// AdminParameters renders the parameter management screen.
func (h *UIHandlers) AdminParameters(w http.ResponseWriter, r *http.Request) {
	parameters, err := h.Parameters.List(r.Context(), h.session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, PageData{
		Page:  "page-admin-parameters",
		Title: "Manage parameters",
		Data:  parameters,
	})
}

func parameterInputFromForm(r *http.Request) (service.ParameterInput, error) {
	if err := r.ParseForm(); err != nil {
		return service.ParameterInput{}, err
	}
	return service.ParameterInput{
		Name:         r.PostFormValue("name"),
		Unit:         r.PostFormValue("unit"),
		Symbol:       r.PostFormValue("symbol"),
		Abbreviation: r.PostFormValue("abbreviation"),
	}, nil
}

// AdminParameterCreate handles the create form.
func (h *UIHandlers) AdminParameterCreate(w http.ResponseWriter, r *http.Request) {
	in, err := parameterInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.Parameters.Create(r.Context(), h.session(r), in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterParameterChange(w, r)
}

// AdminParameterUpdate handles the edit form.
func (h *UIHandlers) AdminParameterUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := parameterInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.Parameters.Update(r.Context(), h.session(r), r.PathValue("id"), in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterParameterChange(w, r)
}

// AdminParameterDelete removes a parameter.
func (h *UIHandlers) AdminParameterDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Parameters.Delete(r.Context(), h.session(r), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterParameterChange(w, r)
}

func (h *UIHandlers) afterParameterChange(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXTrigger(w, "parameters-changed", nil)
		SetHXRedirect(w, "/admin/manage-data/parameters")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/manage-data/parameters", http.StatusSeeOther)
}
