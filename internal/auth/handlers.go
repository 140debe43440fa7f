package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service *Service
	log     *zap.Logger
}

func NewAuthHandler(service *Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, ErrEmptyCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.log.Error("register failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.Info("user registered", zap.String("user", user.ID))
	writeJSON(w, http.StatusCreated, struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}{
		Message: "User registered successfully !",
		ID:      user.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
