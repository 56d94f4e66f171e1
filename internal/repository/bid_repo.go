package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/solosphere/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error)
	GetUserBids(ctx context.Context, email string, asBuyer bool) ([]models.Bid, error)
	UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (models.UpdateResult, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid сохраняет предложение и увеличивает счётчик предложений заказа.
// Повторное предложение того же продавца по тому же заказу отклоняется
// уникальным индексом bids_email_job_id_key.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error) {
	id := uuid.New().String()
	attrs := bid.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}

	err := pgx.BeginFunc(ctx, r.DB, func(tx pgx.Tx) error {
		insertQuery := `INSERT INTO bids (id, job_id, email, buyer, status, attrs, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := tx.Exec(
			ctx,
			insertQuery,
			id,
			bid.JobID,
			bid.Email,
			bid.Buyer,
			bid.Status,
			attrs,
			time.Now().UTC())
		if err != nil {
			if isUniqueViolation(err) {
				return models.ErrBidConflict
			}
			return fmt.Errorf("failed to insert bid: %w", err)
		}
		return incrementBidCount(ctx, tx, bid.JobID)
	})
	if err != nil {
		return models.InsertResult{}, err
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// GetUserBids возвращает предложения пользователя: поданные им
// либо, если asBuyer, поданные по его заказам.
func (r *PostgresBidRepository) GetUserBids(ctx context.Context, email string, asBuyer bool) ([]models.Bid, error) {
	query := `SELECT id::text, job_id::text, email, buyer, status, COALESCE(attrs, '{}'::jsonb)
              FROM bids WHERE email = $1 ORDER BY created_at`
	if asBuyer {
		query = `SELECT id::text, job_id::text, email, buyer, status, COALESCE(attrs, '{}'::jsonb)
              FROM bids WHERE buyer = $1 ORDER BY created_at`
	}

	rows, err := r.DB.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.JobID,
			&bid.Email,
			&bid.Buyer,
			&bid.Status,
			&bid.Attrs); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// UpdateBidStatus меняет статус предложения.
func (r *PostgresBidRepository) UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (models.UpdateResult, error) {
	tag, err := r.DB.Exec(ctx, `UPDATE bids SET status = $1 WHERE id = $2`, status, bidId)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("failed to update bid status: %w", err)
	}
	n := tag.RowsAffected()
	return models.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
