package handlers

import (
	"log"
	"net/http"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/services"
	"github.com/senyabanana/solosphere/internal/utils"
)

// AuthHandler - структура для обработки запросов сессии.
type AuthHandler struct {
	Session *services.SessionService
	Logger  *log.Logger
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(session *services.SessionService, logger *log.Logger) *AuthHandler {
	return &AuthHandler{Session: session, Logger: logger}
}

// IssueToken выпускает сессионный токен и ставит его в cookie.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var identity models.Identity
	if !decodeBody(w, r, &identity) {
		return
	}
	if identity.Email == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	token, expiresAt, err := h.Session.Issue(identity)
	if err != nil {
		sendError(w, h.Logger, err, "failed to issue token")
		return
	}

	http.SetCookie(w, h.Session.Cookie(token, expiresAt))
	utils.SendJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// Logout удаляет сессионный cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.Session.ClearCookie())
	utils.SendJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
}
