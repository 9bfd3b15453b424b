package httpx

import (
	"net/http"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat relays a question to the assistant endpoint and returns the answer.
// The widget on the public pages posts JSON; an attached session is optional.
func (h *UIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	reply, err := h.Assistant.Ask(r.Context(), h.session(r), req.Message)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
