package handler

import (
	"net/http"

	"smartsave-go/internal/transport/httpserver/middleware"
)

type healthResponse struct {
	Status string `json:"status"`
}

type authMeResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
	Provider string `json:"provider"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	writeJSON(w, http.StatusOK, authMeResponse{
		Name:     profile.Name,
		Email:    profile.Email,
		Picture:  profile.Picture,
		Provider: h.Auth.Kind(),
	})
}
