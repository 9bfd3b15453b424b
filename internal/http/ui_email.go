package httpx

import (
	"net/http"

	"github.com/limnolab/limno-ui-api/internal/domain/model"
	"github.com/limnolab/limno-ui-api/internal/service"
)

// emailPageData feeds the sender-config screen. Decrypted is the plaintext
// password shown when the admin toggles visibility.
type emailPageData struct {
	Config    *model.EmailConfig
	Decrypted string
}

// AdminEmailSender renders the SMTP sender configuration screen.
func (h *UIHandlers) AdminEmailSender(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	configs, err := h.Email.Get(r.Context(), sess)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data := emailPageData{}
	if len(configs) > 0 {
		data.Config = &configs[0]
		if plain, decErr := h.Email.Decrypt(r.Context(), sess, configs[0].Password); decErr == nil {
			data.Decrypted = plain
		}
	}
	h.render(w, r, PageData{Page: "page-admin-email", Title: "Email sender", Data: data})
}

// AdminEmailSave creates or updates the sender configuration. The form
// carries the record id when one already exists.
func (h *UIHandlers) AdminEmailSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := service.EmailConfigInput{
		SenderEmail: r.PostFormValue("sender_email"),
		SenderName:  r.PostFormValue("sender_name"),
		Username:    r.PostFormValue("username"),
		Password:    r.PostFormValue("password"),
	}

	var err error
	if id := r.PostFormValue("id"); id != "" {
		err = h.Email.Update(r.Context(), h.session(r), id, in)
	} else {
		err = h.Email.Create(r.Context(), h.session(r), in)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterEmailChange(w, r)
}

// AdminEmailDelete removes the sender configuration.
func (h *UIHandlers) AdminEmailDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Email.Delete(r.Context(), h.session(r), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.afterEmailChange(w, r)
}

// AdminEmailTest sends a test message with the stored sender.
func (h *UIHandlers) AdminEmailTest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	in := service.TestEmailInput{
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
	}
	if err := h.Email.SendTest(r.Context(), h.session(r), in); err != nil {
		h.fail(w, r, err)
		return
	}
	if IsHTMX(r) {
		SetHXTrigger(w, "test-email-sent", nil)
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "test email sent"})
}

func (h *UIHandlers) afterEmailChange(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXRedirect(w, "/admin/settings/email-sender")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/admin/settings/email-sender", http.StatusSeeOther)
}
