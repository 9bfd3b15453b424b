package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
)

type dashboardData struct {
	LakeCount        int
	ParameterCount   int
	MeasurementCount int
	Years            []int
	Lakes            []model.Lake
	Recent           []model.Measurement
}

const dashboardRecentLimit = 8

// AdminDashboard fans out to the backend for the stat cards and the recent
// measurement list; the page is the slowest upstream call, not their sum.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)

	var data dashboardData
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		lakes, err := h.Lakes.List(ctx, sess)
		if err != nil {
			return err
		}
		data.Lakes = lakes
		data.LakeCount = len(lakes)
		return nil
	})
	g.Go(func() error {
		params, err := h.Parameters.List(ctx, sess)
		if err != nil {
			return err
		}
		data.ParameterCount = len(params)
		return nil
	})
	g.Go(func() error {
		measurements, err := h.Measurements.List(ctx, sess)
		if err != nil {
			return err
		}
		data.MeasurementCount = len(measurements)
		if len(measurements) > dashboardRecentLimit {
			measurements = measurements[:dashboardRecentLimit]
		}
		data.Recent = measurements
		return nil
	})
	g.Go(func() error {
		years, err := h.Measurements.Years(ctx, sess)
		if err != nil {
			return err
		}
		data.Years = years
		return nil
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, PageData{Page: "page-admin-dashboard", Title: "Dashboard", Data: data})
}
