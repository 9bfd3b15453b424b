package httpx

import (
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/limnolab/limno-ui-api/internal/errors"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
)

type dataPageData struct {
	Lakes      []model.Lake
	Parameters []model.Parameter
	Years      []int
}

// Data renders the visualization page with the lake, parameter and year
// selectors populated. The chart itself fetches its series from the JSON
// endpoint below.
func (h *UIHandlers) Data(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	var data dataPageData
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		data.Lakes, err = h.Lakes.List(ctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		data.Parameters, err = h.Parameters.List(ctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		data.Years, err = h.Measurements.Years(ctx, sess)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, PageData{Page: "page-data", Title: "Data", Data: data})
}

// MeasurementSeries returns one (lake, parameter, year) series as JSON for
// the chart on the data page.
func (h *UIHandlers) MeasurementSeries(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		WriteAppError(w, apperrors.ValidationField("year", "must be a number"))
		return
	}
	series, err := h.Measurements.Series(r.Context(), h.session(r), r.PathValue("lake"), r.PathValue("parameter"), year)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, series)
}

// DataRepositories lists the monitored lakes as repository cards.
func (h *UIHandlers) DataRepositories(w http.ResponseWriter, r *http.Request) {
	lakes, err := h.Lakes.List(r.Context(), h.session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, PageData{Page: "page-data-repositories", Title: "Repositories", Data: lakes})
}

type repositoryData struct {
	Lake         model.Lake
	Measurements []model.Measurement
}

// DataRepository renders one lake with its measurement history.
func (h *UIHandlers) DataRepository(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	id := r.PathValue("id")

	lake, err := h.Lakes.Get(r.Context(), sess, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	measurements, err := h.Measurements.List(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filtered := measurements[:0:0]
	for _, m := range measurements {
		if m.LakeName == lake.Name {
			filtered = append(filtered, m)
		}
	}
	h.render(w, r, PageData{
		Page:  "page-data-repository",
		Title: lake.Name,
		Data:  repositoryData{Lake: lake, Measurements: filtered},
	})
}

// Profile shows the signed-in account.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-profile", Title: "Profile"})
}
