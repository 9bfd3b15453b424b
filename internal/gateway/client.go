// Package gateway is the single outbound client for the limnology backend
// API. Every consumer goes through its normalized Result rather than
// inspecting raw response shapes, and a 401 from any call raises one
// process-wide unauthorized signal.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

// Credential carries the backend's own session cookie for one signed-in
// user. The zero value means an unauthenticated call.
type Credential struct {
	Cookie string
}

// Result is the normalized outcome of a backend call. OK is true only for
// 2xx responses; Payload holds the extracted envelope body and Message the
// extracted error detail, whichever applies.
type Result struct {
	OK      bool
	Status  int
	Payload json.RawMessage
	Message string
}

// Decode unmarshals the result payload into dst.
func (r Result) Decode(dst any) error {
	if len(r.Payload) == 0 {
		return fmt.Errorf("empty payload (status %d)", r.Status)
	}
	return json.Unmarshal(r.Payload, dst)
}

// Download is a streamed binary response (Excel export). The caller owns
// closing Body.
type Download struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Length      int64
}

// Caller is the request surface feature services depend on. The concrete
// Client implements it; tests substitute a generated mock.
type Caller interface {
	Get(ctx context.Context, cred Credential, rel string, query url.Values) (Result, error)
	PostJSON(ctx context.Context, cred Credential, rel string, body any) (Result, error)
	PutJSON(ctx context.Context, cred Credential, rel string, body any) (Result, error)
	Delete(ctx context.Context, cred Credential, rel string) (Result, error)
	PostMultipart(ctx context.Context, cred Credential, rel string, form MultipartForm) (Result, error)
	PutMultipart(ctx context.Context, cred Credential, rel string, form MultipartForm) (Result, error)
	Download(ctx context.Context, cred Credential, rel string, query url.Values) (*Download, error)
}

// Client talks to the backend origin configured per deployment environment.
type Client struct {
	base   *url.URL
	hc     *http.Client
	logger *slog.Logger

	// unauthorized coalesces 401 notifications: capacity one, non-blocking
	// sends, so a storm of concurrent failures raises a single signal.
	unauthorized chan struct{}
}

var _ Caller = (*Client)(nil)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration // default 30s when zero
	Logger  *slog.Logger
}

// New constructs a backend API client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend URL %q must be absolute", opts.BaseURL)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:         base,
		hc:           &http.Client{Timeout: timeout},
		logger:       logger,
		unauthorized: make(chan struct{}, 1),
	}, nil
}

// Unauthorized exposes the process-wide credential-failure signal. It is
// consumed by the session service for the lifetime of the application.
func (c *Client) Unauthorized() <-chan struct{} { return c.unauthorized }

func (c *Client) signalUnauthorized() {
	select {
	case c.unauthorized <- struct{}{}:
	default:
		// A signal is already pending; coalesce.
	}
}

func (c *Client) endpoint(rel string, query url.Values) string {
	u := *c.base
	u.Path = path.Join(u.Path, rel)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, cred Credential, rel string, query url.Values) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(rel, query), nil)
	if err != nil {
		return Result{}, err
	}
	return c.do(req, cred)
}

// PostJSON issues an authenticated POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, cred Credential, rel string, body any) (Result, error) {
	return c.sendJSON(ctx, cred, http.MethodPost, rel, body)
}

// PutJSON issues an authenticated PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, cred Credential, rel string, body any) (Result, error) {
	return c.sendJSON(ctx, cred, http.MethodPut, rel, body)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, cred Credential, rel string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(rel, nil), nil)
	if err != nil {
		return Result{}, err
	}
	return c.do(req, cred)
}

func (c *Client) sendJSON(ctx context.Context, cred Credential, method, rel string, body any) (Result, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return Result{}, fmt.Errorf("encode request body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(rel, nil), &buf)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, cred)
}

// MultipartForm describes a multipart POST: plain fields plus at most one
// file part, passed through to the backend with its original field names.
type MultipartForm struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

// PostMultipart issues an authenticated multipart POST (Excel import, lake
// photos).
func (c *Client) PostMultipart(ctx context.Context, cred Credential, rel string, form MultipartForm) (Result, error) {
	return c.sendMultipart(ctx, cred, http.MethodPost, rel, form)
}

// PutMultipart issues an authenticated multipart PUT (lake updates carry
// the photo alongside the fields).
func (c *Client) PutMultipart(ctx context.Context, cred Credential, rel string, form MultipartForm) (Result, error) {
	return c.sendMultipart(ctx, cred, http.MethodPut, rel, form)
}

func (c *Client) sendMultipart(ctx context.Context, cred Credential, method, rel string, form MultipartForm) (Result, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range form.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return Result{}, fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	if form.File != nil {
		part, err := mw.CreateFormFile(form.FileField, form.FileName)
		if err != nil {
			return Result{}, fmt.Errorf("create form file: %w", err)
		}
		if _, err := io.Copy(part, form.File); err != nil {
			return Result{}, fmt.Errorf("copy form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(rel, nil), &buf)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, cred)
}

// Download streams a binary response, preserving the filename from the
// backend's Content-Disposition header.
func (c *Client) Download(ctx context.Context, cred Credential, rel string, query url.Values) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(rel, query), nil)
	if err != nil {
		return nil, err
	}
	c.attachCredential(req, cred)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.signalUnauthorized()
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, cdErr := mime.ParseMediaType(cd); cdErr == nil {
			filename = params["filename"]
		}
	}
	return &Download{
		Body:        resp.Body,
		Filename:    filename,
		ContentType: resp.Header.Get("Content-Type"),
		Length:      resp.ContentLength,
	}, nil
}

// SignIn posts credentials to the backend and captures its session cookie
// through a per-attempt cookie jar, so the credential can be replayed on
// this user's later calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (Result, Credential, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return Result{}, Credential{}, fmt.Errorf("create cookie jar: %w", err)
	}
	jc := &http.Client{Jar: jar, Timeout: c.hc.Timeout}

	var buf bytes.Buffer
	payload := map[string]string{"email": email, "password": password}
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return Result{}, Credential{}, fmt.Errorf("encode credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("users/signIn", nil), &buf)
	if err != nil {
		return Result{}, Credential{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := jc.Do(req)
	if err != nil {
		return Result{}, Credential{}, err
	}
	res, err := c.normalize(resp)
	if err != nil {
		return Result{}, Credential{}, err
	}

	var pairs []string
	for _, ck := range jar.Cookies(c.base) {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return res, Credential{Cookie: strings.Join(pairs, "; ")}, nil
}

func (c *Client) attachCredential(req *http.Request, cred Credential) {
	if cred.Cookie != "" {
		req.Header.Set("Cookie", cred.Cookie)
	}
}

// do executes the request and normalizes the response envelope. Transport
// errors are returned as-is; callers treat them like authentication
// failures for guard purposes and as retry-later for CRUD.
func (c *Client) do(req *http.Request, cred Credential) (Result, error) {
	c.attachCredential(req, cred)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.WarnContext(req.Context(), "backend call failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Any("error", err),
		)
		return Result{}, err
	}
	res, err := c.normalize(resp)
	if err != nil {
		return Result{}, err
	}

	c.logger.DebugContext(req.Context(), "backend call",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// normalize reads the response, extracts the envelope, and raises the
// unauthorized signal on 401.
func (c *Client) normalize(resp *http.Response) (Result, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.signalUnauthorized()
	}

	res := Result{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}
	if res.OK {
		res.Payload = extractPayload(body)
	} else {
		res.Message = extractMessage(body)
	}
	return res, nil
}

const maxEnvelopeBytes = 16 << 20

// IdentityFromStatus maps a session-status payload ({user: {id, email,
// full_name, roles}}) to a domain identity.
func IdentityFromStatus(res Result) (domainauth.Identity, error) {
	var payload struct {
		User struct {
			ID       json.Number `json:"id"`
			Email    string      `json:"email"`
			FullName string      `json:"full_name"`
			Roles    []string    `json:"roles"`
		} `json:"user"`
	}
	if err := res.Decode(&payload); err != nil {
		return domainauth.Identity{}, fmt.Errorf("decode session status: %w", err)
	}
	if payload.User.ID.String() == "" {
		return domainauth.Identity{}, fmt.Errorf("session status missing user id")
	}
	return domainauth.Identity{
		UserID:   payload.User.ID.String(),
		Email:    payload.User.Email,
		FullName: payload.User.FullName,
		Roles:    payload.User.Roles,
	}, nil
}
