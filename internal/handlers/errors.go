package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/utils"
)

// sendError переводит ошибку сервиса в HTTP-ответ.
func sendError(w http.ResponseWriter, logger *log.Logger, err error, fallback string) {
	logger.Println(err)

	var errorResponse *models.ErrorResponse
	switch {
	case errors.As(err, &errorResponse):
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
	case errors.Is(err, models.ErrUnauthorized):
		utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, models.ErrBidConflict):
		utils.SendErrorResponse(w, http.StatusBadRequest, "You have already placed a bid on this job")
	case errors.Is(err, models.ErrInvalidID):
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid id")
	default:
		utils.SendErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

// decodeBody разбирает тело запроса и при ошибке сам отвечает клиенту.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := utils.DecodeJSON(w, r, v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.SendErrorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
	return false
}
