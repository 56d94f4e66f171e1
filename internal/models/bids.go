package models

import (
	"fmt"
)

type BidStatus string // Статус предложения

const (
	PendingBid    BidStatus = "Pending"     // Предложение ожидает решения
	InProgressBid BidStatus = "In Progress" // Предложение принято в работу
	CompleteBid   BidStatus = "Complete"    // Работа завершена
	RejectedBid   BidStatus = "Rejected"    // Предложение отклонено
)

// Bid представляет модель предложения продавца по заказу.
type Bid struct {
	ID     string
	JobID  string
	Email  string
	Buyer  string
	Status BidStatus
	Attrs  map[string]any
}

var bidFields = []string{"_id", "jobId", "email", "buyer", "status"}

// MarshalJSON сериализует предложение в плоский документ.
func (b Bid) MarshalJSON() ([]byte, error) {
	return mergeDocument(map[string]any{
		"_id":    b.ID,
		"jobId":  b.JobID,
		"email":  b.Email,
		"buyer":  b.Buyer,
		"status": b.Status,
	}, b.Attrs)
}

// UnmarshalJSON разбирает документ предложения.
func (b *Bid) UnmarshalJSON(data []byte) error {
	fields, attrs, err := splitDocument(data, bidFields...)
	if err != nil {
		return err
	}

	var bid Bid
	if bid.ID, err = decodeString(fields["_id"]); err != nil {
		return fmt.Errorf("invalid _id: %w", err)
	}
	if bid.JobID, err = decodeString(fields["jobId"]); err != nil {
		return fmt.Errorf("invalid jobId: %w", err)
	}
	if bid.Email, err = decodeString(fields["email"]); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if bid.Buyer, err = decodeString(fields["buyer"]); err != nil {
		return fmt.Errorf("invalid buyer: %w", err)
	}
	status, err := decodeString(fields["status"])
	if err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}
	bid.Status = BidStatus(status)
	bid.Attrs = attrs
	*b = bid
	return nil
}

// BidStatusRequest - тело запроса на смену статуса.
type BidStatusRequest struct {
	Status BidStatus `json:"status"`
}
