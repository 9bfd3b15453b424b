package httpx

import (
	"net/http"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// Lake form uploads are capped well above any plausible photo.
const maxLakeFormBytes = 20 << 20

// lakesPageData feeds the lake admin screen: the catalog plus the province
// options for the create/edit form.
type lakesPageData struct {
	Lakes     []model.Lake
	Provinces []model.Province
}

// AdminLakes renders the lake management screen.
func (h *UIHandlers) AdminLakes(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	lakes, err := h.Lakes.List(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	provinces, err := h.Lakes.Provinces(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, PageData{
		Page:  "page-admin-lakes",
		Title: "Manage lakes",
		Data:  lakesPageData{Lakes: lakes, Provinces: provinces},
	})
}

// AdminLakeCities answers the dependent city dropdown for a province.
func (h *UIHandlers) AdminLakeCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Lakes.Cities(r.Context(), h.session(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cities)
}

func lakeInputFromForm(r *http.Request) (service.LakeInput, error) {
	if err := r.ParseMultipartForm(maxLakeFormBytes); err != nil {
		return service.LakeInput{}, err
	}
	in := service.LakeInput{
		Name:      r.PostFormValue("name"),
		Province:  r.PostFormValue("province"),
		City:      r.PostFormValue("city"),
		Longitude: r.PostFormValue("longitude"),
		Latitude:  r.PostFormValue("latitude"),
	}
	if file, header, err := r.FormFile("image"); err == nil {
		in.Image = file
		in.ImageName = header.Filename
	}
	return in, nil
}

// AdminLakeCreate handles the create form.
func (h *UIHandlers) AdminLakeCreate(w http.ResponseWriter, r *http.Request) {
	in, err := lakeInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.Lakes.Create(r.Context(), h.session(r), in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterLakeChange(w, r)
}

// AdminLakeUpdate handles the edit form.
func (h *UIHandlers) AdminLakeUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := lakeInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	if _, err := h.Lakes.Update(r.Context(), h.session(r), r.PathValue("id"), in); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterLakeChange(w, r)
}

// AdminLakeDelete removes a lake.
func (h *UIHandlers) AdminLakeDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Lakes.Delete(r.Context(), h.session(r), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterLakeChange(w, r)
}

func (h *UIHandlers) afterLakeChange(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXTrigger(w, "lakes-changed", nil)
		SetHXRedirect(w, "/admin/manage-data/lakes")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/manage-data/lakes", http.StatusSeeOther)
}
