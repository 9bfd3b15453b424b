package service

import (
	"context"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// MeasurementService reads and edits sampling data.
type MeasurementService struct {
	api gateway.Caller
}

// NewMeasurementService constructs a new MeasurementService.
func NewMeasurementService(api gateway.Caller) *MeasurementService {
	return &MeasurementService{api: api}
}

// List returns all measurements with their per-parameter values.
func (s *MeasurementService) List(ctx context.Context, sess domainauth.Session) ([]model.Measurement, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "measurements/", nil)
	return decodeResult[[]model.Measurement](res, err)
}

// UpdateValueInput carries an edit to one measurement value.
type UpdateValueInput struct {
	Value string `json:"-"`
}

// Validate checks the value is a number.
func (in UpdateValueInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Value, validation.Required, validation.By(func(any) error {
			if _, err := strconv.ParseFloat(in.Value, 64); err != nil {
				return fmt.Errorf("must be a number")
			}
			return nil
		})),
	)
}

// UpdateValue changes a single measurement value by its value ID.
func (s *MeasurementService) UpdateValue(ctx context.Context, sess domainauth.Session, valueID string, in UpdateValueInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	value, _ := strconv.ParseFloat(in.Value, 64)
	res, err := s.api.PutJSON(ctx, credentialFor(sess), "measurements/"+valueID, map[string]any{"value": value})
	return checkResult(res, err)
}

// Years returns the years for which any measurement exists, used to build
// the chart filters.
func (s *MeasurementService) Years(ctx context.Context, sess domainauth.Session) ([]int, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "measurements/years", nil)
	return decodeResult[[]int](res, err)
}

// Series returns the values of one parameter at one lake over one year.
func (s *MeasurementService) Series(ctx context.Context, sess domainauth.Session, lakeID, parameterID string, year int) ([]model.SeriesPoint, error) {
	rel := fmt.Sprintf("measurements/%s/%s/%d", lakeID, parameterID, year)
	res, err := s.api.Get(ctx, credentialFor(sess), rel, nil)
	return decodeResult[[]model.SeriesPoint](res, err)
}
