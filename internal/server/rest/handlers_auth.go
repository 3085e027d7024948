package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/common"
	"github.com/dmitrijs2005/edustream/internal/server/auth"
	"github.com/dmitrijs2005/edustream/internal/server/services"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.users.Register(r.Context(), req)
	if err != nil {
		var verr *common.ValidationError
		if errors.As(err, &verr) {
			writeValidation(w, verr)
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Registration failed",
			"message": "Unable to create the account. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    res.User,
		"token":   res.Token,
		"message": "Registration successful",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	res, err := h.users.Login(r.Context(), req)
	if err != nil {
		var verr *common.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, common.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":   "Login failed",
				"message": "Unable to sign in. Please try again later.",
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   res.Token,
		"user":    res.User,
		"message": "Login successful",
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	token, err := bearerTokenFromHeader(r.Header.Get(common.AuthorizationHeaderName))
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	fresh, err := h.users.Refresh(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":   "Token refresh failed",
			"message": refreshFailureReason(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":   fresh,
		"message": "Token refreshed successfully",
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), userIDFromContext(r.Context())); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Logout failed",
			"message": "Internal server error",
		})
		return
	}
	writeMessage(w, http.StatusOK, "Successfully logged out")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Me(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "User info retrieval failed",
			"message": "Internal server error",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func refreshFailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpired):
		return "Token has expired and can no longer be refreshed"
	case errors.Is(err, auth.ErrSignatureMismatch):
		return "Token signature could not be verified"
	default:
		return "Token could not be parsed"
	}
}
