package relay

import (
	"net/http"

	"github.com/go-chi/render"
)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, rerr := h.Do(r.Context(), r.Method, r.Body)
	if rerr != nil {
		render.Status(r, rerr.Status)
		render.JSON(w, r, rerr)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp); err != nil {
		h.logger.WithField("fn", h.ep.Name).Errorf("failed to write response: %s", err)
	}
}
