package service

import (
	"context"
	"io"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// LakeService manages the lake catalog through the backend API.
type LakeService struct {
	api gateway.Caller
}

// NewLakeService constructs a new LakeService.
func NewLakeService(api gateway.Caller) *LakeService {
	return &LakeService{api: api}
}

// LakeInput carries the lake form fields. Image is optional on update; when
// nil the backend keeps the current image.
type LakeInput struct {
	Name      string
	Province  string
	City      string
	Longitude string
	Latitude  string

	ImageName string
	Image     io.Reader
}

// Validate checks the lake form fields.
func (in LakeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Province, validation.Required),
		validation.Field(&in.City, validation.Required),
		validation.Field(&in.Longitude, validation.Required, is.Float),
		validation.Field(&in.Latitude, validation.Required, is.Float),
	)
}

func (in LakeInput) form() gateway.MultipartForm {
	form := gateway.MultipartForm{
		Fields: map[string]string{
			"name":      in.Name,
			"province":  in.Province,
			"city":      in.City,
			"longitude": in.Longitude,
			"latitude":  in.Latitude,
		},
	}
	if in.Image != nil {
		form.FileField = "image"
		form.FileName = in.ImageName
		form.File = in.Image
	}
	return form
}

// List returns all lakes.
func (s *LakeService) List(ctx context.Context, sess domainauth.Session) ([]model.Lake, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "lakes/", nil)
	return decodeResult[[]model.Lake](res, err)
}

// Get returns one lake by ID.
func (s *LakeService) Get(ctx context.Context, sess domainauth.Session, id string) (model.Lake, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "lakes/"+id, nil)
	return decodeResult[model.Lake](res, err)
}

// Create adds a lake. The backend expects a multipart form because the lake
// image travels with the fields.
func (s *LakeService) Create(ctx context.Context, sess domainauth.Session, in LakeInput) (model.Lake, error) {
	if err := in.Validate(); err != nil {
		return model.Lake{}, err
	}
	res, err := s.api.PostMultipart(ctx, credentialFor(sess), "lakes", in.form())
	return decodeResult[model.Lake](res, err)
}

// Update modifies a lake.
func (s *LakeService) Update(ctx context.Context, sess domainauth.Session, id string, in LakeInput) (model.Lake, error) {
	if err := in.Validate(); err != nil {
		return model.Lake{}, err
	}
	res, err := s.api.PutMultipart(ctx, credentialFor(sess), "lakes/"+id, in.form())
	return decodeResult[model.Lake](res, err)
}

// Delete removes a lake.
func (s *LakeService) Delete(ctx context.Context, sess domainauth.Session, id string) error {
	res, err := s.api.Delete(ctx, credentialFor(sess), "lakes/"+id)
	return checkResult(res, err)
}

// Provinces lists the provinces available to the lake form.
func (s *LakeService) Provinces(ctx context.Context, sess domainauth.Session) ([]model.Province, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "others/provinces", nil)
	return decodeResult[[]model.Province](res, err)
}

// Cities lists the cities of a province.
func (s *LakeService) Cities(ctx context.Context, sess domainauth.Session, provinceID string) ([]model.City, error) {
	res, err := s.api.Get(ctx, credentialFor(sess), "others/provinces/cities/"+provinceID, nil)
	return decodeResult[[]model.City](res, err)
}
