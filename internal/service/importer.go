package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	"github.com/limnolab/limno-ui-api/internal/gateway"
)

// ImportService pushes Excel workbooks of measurements into the backend and
// pulls them back out.
type ImportService struct {
	api gateway.Caller
}

// NewImportService constructs a new ImportService.
func NewImportService(api gateway.Caller) *ImportService {
	return &ImportService{api: api}
}

// UploadInput carries the Excel upload form.
type UploadInput struct {
	LakeID   string
	FileName string
	File     io.Reader
}

// Validate checks the upload form. Only Excel workbooks are accepted; the
// backend parses them row by row.
func (in UploadInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.LakeID, validation.Required),
		validation.Field(&in.FileName, validation.Required, validation.By(func(any) error {
			switch strings.ToLower(filepath.Ext(in.FileName)) {
			case ".xlsx", ".xls":
				return nil
			}
			return errors.New("must be an .xlsx or .xls file")
		})),
	)
}

// Upload sends a workbook of measurements for one lake.
func (s *ImportService) Upload(ctx context.Context, sess domainauth.Session, in UploadInput) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	form := gateway.MultipartForm{
		Fields:    map[string]string{"lake_id": in.LakeID},
		FileField: "excelFile",
		FileName:  in.FileName,
		File:      in.File,
	}
	res, err := s.api.PostMultipart(ctx, credentialFor(sess), "import/upload", form)
	if err != nil || !res.OK {
		return "", checkResult(res, err)
	}
	var out struct {
		Message string `json:"message"`
	}
	if decodeErr := res.Decode(&out); decodeErr == nil && out.Message != "" {
		return out.Message, nil
	}
	return "", nil
}

// Export downloads the measurement workbook the backend generates. The
// caller owns the returned body.
func (s *ImportService) Export(ctx context.Context, sess domainauth.Session) (*gateway.Download, error) {
	return s.api.Download(ctx, credentialFor(sess), "import/export", nil)
}
