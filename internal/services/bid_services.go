package services

import (
	"context"
	"net/http"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/repository"
	"github.com/senyabanana/solosphere/internal/utils"
)

type BidService struct {
	Repo repository.BidRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository) *BidService {
	return &BidService{Repo: repo}
}

// PlaceBid сохраняет предложение продавца по заказу.
func (s *BidService) PlaceBid(ctx context.Context, bid models.Bid) (models.InsertResult, error) {
	if bid.Email == "" || bid.JobID == "" {
		return models.InsertResult{}, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: email or jobId")
	}
	jobId, err := utils.ParseID(bid.JobID)
	if err != nil {
		return models.InsertResult{}, models.ErrInvalidID
	}
	bid.JobID = jobId
	if bid.Status == "" {
		bid.Status = models.PendingBid
	}
	return s.Repo.CreateBid(ctx, bid)
}

// GetUserBids получает предложения пользователя. Запрашивать можно только свои предложения.
func (s *BidService) GetUserBids(ctx context.Context, identity models.Identity, email string, asBuyer bool) ([]models.Bid, error) {
	if identity.Email == "" || identity.Email != email {
		return nil, models.ErrUnauthorized
	}
	return s.Repo.GetUserBids(ctx, email, asBuyer)
}

// UpdateBidStatus меняет статус предложения. Значение статуса не проверяется.
func (s *BidService) UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (models.UpdateResult, error) {
	bidId, err := utils.ParseID(bidId)
	if err != nil {
		return models.UpdateResult{}, models.ErrInvalidID
	}
	return s.Repo.UpdateBidStatus(ctx, bidId, status)
}
