package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/solosphere/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// JobRepository - интерфейс для работы с заказами.
type JobRepository interface {
	CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error)
	GetJobsByBuyer(ctx context.Context, email string) ([]models.Job, error)
	GetJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, jobId string) (*models.Job, error)
	DeleteJob(ctx context.Context, jobId string) (models.DeleteResult, error)
	UpsertJob(ctx context.Context, jobId string, upd models.JobUpdate) (models.UpdateResult, error)
	SearchJobs(ctx context.Context, q models.JobQuery) ([]models.Job, error)
}

// PostgresJobRepository - реализация JobRepository для базы данных.
type PostgresJobRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresJobRepository создаёт новый экземпляр PostgresJobRepository.
func NewPostgresJobRepository(db *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

const selectJobs = `SELECT id::text, COALESCE(title, ''), COALESCE(category, ''), deadline, bid_count,
       COALESCE(buyer, '{}'::jsonb), COALESCE(attrs, '{}'::jsonb) FROM jobs`

// CreateJob сохраняет новый заказ.
func (r *PostgresJobRepository) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	id := uuid.New().String()
	attrs := job.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO jobs (id, title, category, deadline, bid_count, buyer, attrs, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
   `,
		id,
		job.Title,
		job.Category,
		job.Deadline,
		job.BidCount,
		job.Buyer,
		attrs,
		time.Now().UTC())
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("failed to insert job: %w", err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// GetJobsByBuyer возвращает заказы, размещённые пользователем.
func (r *PostgresJobRepository) GetJobsByBuyer(ctx context.Context, email string) ([]models.Job, error) {
	return r.queryJobs(ctx, selectJobs+` WHERE buyer->>'email' = $1 ORDER BY created_at`, email)
}

// GetJobs возвращает все заказы.
func (r *PostgresJobRepository) GetJobs(ctx context.Context) ([]models.Job, error) {
	return r.queryJobs(ctx, selectJobs+` ORDER BY created_at`)
}

// GetJob возвращает заказ по ID или nil, если его нет.
func (r *PostgresJobRepository) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	jobs, err := r.queryJobs(ctx, selectJobs+` WHERE id = $1`, jobId)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return &jobs[0], nil
}

// DeleteJob удаляет заказ. Предложения по нему не удаляются.
func (r *PostgresJobRepository) DeleteJob(ctx context.Context, jobId string) (models.DeleteResult, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobId)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("failed to delete job: %w", err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

// UpsertJob обновляет переданные поля заказа, а если заказа нет - создаёт его.
// ModifiedCount равен 0, если значения полей не изменились.
func (r *PostgresJobRepository) UpsertJob(ctx context.Context, jobId string, upd models.JobUpdate) (models.UpdateResult, error) {
	query, args := buildUpsertQuery(jobId, upd)

	var inserted bool
	err := r.DB.QueryRow(ctx, query, args...).Scan(&inserted)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// строка найдена, но обновлять было нечего
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
	case err != nil:
		return models.UpdateResult{}, fmt.Errorf("failed to upsert job: %w", err)
	case inserted:
		return models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &jobId}, nil
	default:
		return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
}

// SearchJobs возвращает заказы по фильтру категорий и подстроке в названии.
func (r *PostgresJobRepository) SearchJobs(ctx context.Context, q models.JobQuery) ([]models.Job, error) {
	query, args := buildSearchQuery(q)
	return r.queryJobs(ctx, query, args...)
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Category,
			&job.Deadline,
			&job.BidCount,
			&job.Buyer,
			&job.Attrs); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// buildSearchQuery собирает запрос поиска заказов.
func buildSearchQuery(q models.JobQuery) (string, []any) {
	query := selectJobs
	var filters []string
	var args []any
	argIndex := 1

	if q.Search != "" {
		filters = append(filters, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, argIndex))
		args = append(args, "%"+escapeLike(q.Search)+"%")
		argIndex++
	}

	if len(q.Categories) > 0 {
		filters = append(filters, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, pq.Array(q.Categories))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	switch q.Sort {
	case models.SortAsc:
		query += " ORDER BY deadline ASC"
	case models.SortDesc:
		query += " ORDER BY deadline DESC"
	default:
		query += " ORDER BY created_at"
	}
	return query, args
}

// buildUpsertQuery собирает INSERT ... ON CONFLICT только из переданных полей.
// Существующая строка обновляется, только если хотя бы одно значение отличается;
// иначе RETURNING не возвращает строк. xmax = 0 означает, что строка была вставлена.
func buildUpsertQuery(jobId string, upd models.JobUpdate) (string, []any) {
	columns := []string{"id", "created_at"}
	args := []any{jobId, time.Now().UTC()}
	var updates, changed []string

	add := func(column string, value any, newValue string) {
		columns = append(columns, column)
		args = append(args, value)
		updates = append(updates, fmt.Sprintf("%s = %s", column, newValue))
		changed = append(changed, fmt.Sprintf("jobs.%s IS DISTINCT FROM (%s)", column, newValue))
	}

	if upd.Title != nil {
		add("title", *upd.Title, "EXCLUDED.title")
	}
	if upd.Category != nil {
		add("category", *upd.Category, "EXCLUDED.category")
	}
	if upd.DeadlineSet {
		add("deadline", upd.Deadline, "EXCLUDED.deadline")
	}
	if upd.BidCount != nil {
		add("bid_count", *upd.BidCount, "EXCLUDED.bid_count")
	}
	if upd.Buyer != nil {
		add("buyer", *upd.Buyer, "EXCLUDED.buyer")
	}
	if len(upd.Attrs) > 0 {
		add("attrs", upd.Attrs, "COALESCE(jobs.attrs, '{}'::jsonb) || EXCLUDED.attrs")
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	conflict := "DO NOTHING"
	if !upd.Empty() {
		conflict = fmt.Sprintf("DO UPDATE SET %s\n\tWHERE %s",
			strings.Join(updates, ", "),
			strings.Join(changed, " OR "))
	}

	query := fmt.Sprintf(`INSERT INTO jobs (%s) VALUES (%s)
	ON CONFLICT (id) %s
	RETURNING (xmax = 0) AS inserted`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		conflict)
	return query, args
}

// escapeLike экранирует спецсимволы шаблона LIKE.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// incrementBidCount увеличивает счётчик предложений заказа в рамках транзакции.
func incrementBidCount(ctx context.Context, tx pgx.Tx, jobId string) error {
	_, err := tx.Exec(ctx, `UPDATE jobs SET bid_count = bid_count + 1 WHERE id = $1`, jobId)
	if err != nil {
		return fmt.Errorf("failed to increment bid count: %w", err)
	}
	return nil
}
