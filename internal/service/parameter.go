package service

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// ParameterService manages the measured-parameter catalog.
type ParameterService struct {
	api gateway.Caller
}

// NewParameterService constructs a new ParameterService.
func NewParameterService(api gateway.Caller) *ParameterService {
	return &ParameterService{api: api}
}

// ParameterInput carries the parameter form fields.
type ParameterInput struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Symbol       string `json:"symbol,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// Validate checks the parameter form fields.
func (in ParameterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Unit, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.Symbol, validation.Length(0, 20)),
		validation.Field(&in.Abbreviation, validation.Length(0, 20)),
	)
}

// List returns all parameters.
func (s *ParameterService) List(ctx context.Context, sess domainauth.Session) ([]model.Parameter, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "parameters/", nil)
	return decodeResult[[]model.Parameter](res, err)
}

// Get returns one parameter by ID.
func (s *ParameterService) Get(ctx context.Context, sess domainauth.Session, id string) (model.Parameter, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "parameters/"+id, nil)
	return decodeResult[model.Parameter](res, err)
}

// Create adds a parameter.
func (s *ParameterService) Create(ctx context.Context, sess domainauth.Session, in ParameterInput) (model.Parameter, error) {
	if err := in.Validate(); err != nil {
		return model.Parameter{}, err
	}
	res, err := s.api.PostJSON(ctx, credentialFor(sess), "parameters", in)
	return decodeResult[model.Parameter](res, err)
}

// Update modifies a parameter.
func (s *ParameterService) Update(ctx context.Context, sess domainauth.Session, id string, in ParameterInput) (model.Parameter, error) {
	if err := in.Validate(); err != nil {
		return model.Parameter{}, err
	}
	res, err := s.api.PutJSON(ctx, credentialFor(sess), "parameters/"+id, in)
	return decodeResult[model.Parameter](res, err)
}

// Delete removes a parameter.
func (s *ParameterService) Delete(ctx context.Context, sess domainauth.Session, id string) error {
	res, err := s.api.Delete(ctx, credentialFor(sess), "parameters/"+id)
	return checkResult(res, err)
}
