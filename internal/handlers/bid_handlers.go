package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/services"
	"github.com/senyabanana/solosphere/internal/utils"
)

// BidHandler - структура для обработки HTTP-запросов по предложениям.
type BidHandler struct {
	Service *services.BidService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *log.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для создания предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bid models.Bid
	if !decodeBody(w, r, &bid) {
		return
	}

	result, err := h.Service.PlaceBid(ctx, bid)
	if err != nil {
		sendError(w, h.Logger, err, "failed to create bid")
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// GetUserBids обрабатывает запросы для получения предложений пользователя.
// Требует RequireSession.
func (h *BidHandler) GetUserBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	asBuyer, err := utils.ParseOptionalBool(r.URL.Query().Get("buyer"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid buyer parameter")
		return
	}

	identity, _ := IdentityFromContext(ctx)
	bids, err := h.Service.GetUserBids(ctx, identity, r.PathValue("email"), asBuyer)
	if err != nil {
		sendError(w, h.Logger, err, "failed to retrieve bids")
		return
	}
	utils.SendJSON(w, http.StatusOK, bids)
}

// UpdateBidStatus обрабатывает запросы для изменения статуса предложения.
func (h *BidHandler) UpdateBidStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.BidStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.Service.UpdateBidStatus(ctx, r.PathValue("id"), req.Status)
	if err != nil {
		sendError(w, h.Logger, err, "failed to update bid status")
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}
