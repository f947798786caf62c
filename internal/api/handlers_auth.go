// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/stockroomhq/stockroom/internal/logging"
	"github.com/stockroomhq/stockroom/internal/metrics"
	"github.com/stockroomhq/stockroom/internal/models"
	"github.com/stockroomhq/stockroom/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if ve := validation.ValidateStruct(req); ve != nil {
		respondValidation(w, ve)
		return
	}

	user, err := rt.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		respondServiceError(w, r, err)
		return
	}

	token, err := rt.jwtManager.GenerateToken(user.ID, user.Email, user.Name, user.Role, user.Permissions)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logging.Info().Str("user", user.ID).Msg("login")
	respondJSON(w, http.StatusOK, models.ItemResponse{
		Success: true,
		Data: models.LoginResponse{
			Token: token,
			User:  user.Public(),
		},
	})
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
