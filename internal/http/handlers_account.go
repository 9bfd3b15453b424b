package httpx

import (
	"log/slog"
	"net/http"

	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// AccountHandlers serves the public self-service flows: registration, email
// verification, and password recovery.
type AccountHandlers struct {
	Accounts *service.AccountService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *AccountHandlers) render(w http.ResponseWriter, r *http.Request, data PageData) {
	data.CSRFToken = GetCSRFToken(r)
	data.Session = GetSessionFromContext(r.Context())
	if err := h.Renderer.RenderPage(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// SignUpPage renders the registration form with the country list.
func (h *AccountHandlers) SignUpPage(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Accounts.Countries(r.Context())
	if err != nil && h.Logger != nil {
		h.Logger.Warn("fetch countries", slog.Any("error", err))
	}
	h.render(w, r, PageData{Page: "page-sign-up", Title: "Create account", Data: countries})
}

// SignUp handles the registration form post.
func (h *AccountHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, PageData{Page: "page-sign-up", Title: "Create account", Error: "invalid form submission"})
		return
	}
	if r.PostFormValue("password") != r.PostFormValue("confirm_password") {
		h.render(w, r, PageData{Page: "page-sign-up", Title: "Create account", Error: "passwords do not match"})
		return
	}

	err := h.Accounts.SignUp(r.Context(), service.SignUpInput{
		FullName:    r.PostFormValue("full_name"),
		Email:       r.PostFormValue("email"),
		Password:    r.PostFormValue("password"),
		Nationality: r.PostFormValue("nationality"),
	})
	if err != nil {
		h.render(w, r, PageData{Page: "page-sign-up", Title: "Create account", Error: err.Error()})
		return
	}
	h.render(w, r, PageData{
		Page:  "page-sign-up",
		Title: "Create account",
		Flash: "account created, check your inbox for the verification link",
	})
}

// Verify completes email verification from the mailed link.
func (h *AccountHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if err := h.Accounts.Confirm(r.Context(), token); err != nil {
		h.render(w, r, PageData{Page: "page-link-expired", Title: "Link expired"})
		return
	}
	h.render(w, r, PageData{Page: "page-account-verified", Title: "Account verified"})
}

// ForgotPasswordPage renders the recovery request form.
func (h *AccountHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-forgot-password", Title: "Recover password"})
}

// ForgotPassword mails a recovery link.
func (h *AccountHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, PageData{Page: "page-forgot-password", Title: "Recover password", Error: "invalid form submission"})
		return
	}
	err := h.Accounts.RequestPasswordRecovery(r.Context(), r.PostFormValue("email"))
	if err != nil && !apperrors.IsNotFound(err) {
		h.render(w, r, PageData{Page: "page-forgot-password", Title: "Recover password", Error: err.Error()})
		return
	}
	// Same answer whether or not the address exists.
	h.render(w, r, PageData{
		Page:  "page-forgot-password",
		Title: "Recover password",
		Flash: "if that address has an account, a recovery link is on its way",
	})
}

// ChangePasswordPage renders the reset form after checking the token is
// still live; lapsed tokens land on the link-expired page.
func (h *AccountHandlers) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	expired, err := h.Accounts.TokenExpired(r.Context(), token)
	if err != nil || expired {
		http.Redirect(w, r, "/link-expired", http.StatusSeeOther)
		return
	}
	h.render(w, r, PageData{Page: "page-change-password", Title: "Change password", Data: token})
}

// ChangePassword applies the new password.
func (h *AccountHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if err := r.ParseForm(); err != nil {
		h.render(w, r, PageData{Page: "page-change-password", Title: "Change password", Data: token, Error: "invalid form submission"})
		return
	}
	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm_password") {
		h.render(w, r, PageData{Page: "page-change-password", Title: "Change password", Data: token, Error: "passwords do not match"})
		return
	}
	if err := h.Accounts.ResetPassword(r.Context(), token, password); err != nil {
		h.render(w, r, PageData{Page: "page-change-password", Title: "Change password", Data: token, Error: err.Error()})
		return
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// LinkExpired renders the lapsed-token page.
func (h *AccountHandlers) LinkExpired(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-link-expired", Title: "Link expired"})
}
