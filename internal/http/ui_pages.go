package httpx

import "net/http"

// Cookie remembering that the visitor already saw the guided tour, so the
// home page only launches it once.
const tourShownCookie = "tour_shown"

// Home renders the landing page and arms the one-time guided tour.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	showTour := false
	if _, err := r.Cookie(tourShownCookie); err != nil {
		showTour = true
		http.SetCookie(w, &http.Cookie{
			Name:     tourShownCookie,
			Value:    "1",
			Path:     "/",
			MaxAge:   3600 * 24 * 365,
			SameSite: http.SameSiteLaxMode,
		})
	}
	h.render(w, r, PageData{Page: "page-home", Title: "Lake monitoring", Data: showTour})
}

// Concept renders the project concept page.
func (h *UIHandlers) Concept(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-concept", Title: "Concept"})
}

// Activities renders the activities page.
func (h *UIHandlers) Activities(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-activities", Title: "Activities"})
}

// News renders the news page.
func (h *UIHandlers) News(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-news", Title: "News"})
}

// ContactUs renders the contact page.
func (h *UIHandlers) ContactUs(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-contact-us", Title: "Contact us"})
}

// AuthRequired renders the please-sign-in interstitial.
func (h *UIHandlers) AuthRequired(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageData{Page: "page-auth-required", Title: "Sign-in required"})
}
