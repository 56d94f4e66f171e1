package services

import (
	"context"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/repository"
	"github.com/senyabanana/solosphere/internal/utils"
)

type JobService struct {
	Repo repository.JobRepository
}

// NewJobService создаёт новый экземпляр JobService.
func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// CreateJob сохраняет заказ как есть.
func (s *JobService) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	return s.Repo.CreateJob(ctx, job)
}

// GetJobsByBuyer получает заказы, размещённые пользователем.
func (s *JobService) GetJobsByBuyer(ctx context.Context, email string) ([]models.Job, error) {
	return s.Repo.GetJobsByBuyer(ctx, email)
}

// GetJobs получает все заказы.
func (s *JobService) GetJobs(ctx context.Context) ([]models.Job, error) {
	return s.Repo.GetJobs(ctx)
}

// GetJob получает заказ по ID. Отсутствующий заказ - nil без ошибки.
func (s *JobService) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	jobId, err := utils.ParseID(jobId)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Repo.GetJob(ctx, jobId)
}

// DeleteJob удаляет заказ по ID.
func (s *JobService) DeleteJob(ctx context.Context, jobId string) (models.DeleteResult, error) {
	jobId, err := utils.ParseID(jobId)
	if err != nil {
		return models.DeleteResult{}, models.ErrInvalidID
	}
	return s.Repo.DeleteJob(ctx, jobId)
}

// UpdateJob применяет переданные поля к заказу; если заказа нет, он создаётся.
func (s *JobService) UpdateJob(ctx context.Context, jobId string, upd models.JobUpdate) (models.UpdateResult, error) {
	jobId, err := utils.ParseID(jobId)
	if err != nil {
		return models.UpdateResult{}, models.ErrInvalidID
	}
	return s.Repo.UpsertJob(ctx, jobId, upd)
}

// SearchJobs ищет заказы по категориям, подстроке в названии и сортирует по дедлайну.
func (s *JobService) SearchJobs(ctx context.Context, categories []string, search, sort string) ([]models.Job, error) {
	var filters []string
	for _, c := range categories {
		if c != "" {
			filters = append(filters, c)
		}
	}
	return s.Repo.SearchJobs(ctx, models.JobQuery{
		Categories: filters,
		Search:     search,
		Sort:       models.ParseSortOrder(sort),
	})
}
