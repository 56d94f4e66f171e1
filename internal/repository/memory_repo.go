package repository

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/senyabanana/solosphere/internal/models"

	"github.com/google/uuid"
)

// MemoryStore - реализация JobRepository и BidRepository в памяти процесса.
// Используется для локального запуска без базы данных и в тестах.
type MemoryStore struct {
	mu   sync.Mutex
	jobs []models.Job
	bids []models.Bid
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Ping всегда успешен.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// CreateJob сохраняет новый заказ.
func (s *MemoryStore) CreateJob(ctx context.Context, job models.Job) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job = cloneJob(job)
	job.ID = uuid.New().String()
	s.jobs = append(s.jobs, job)
	return models.InsertResult{Acknowledged: true, InsertedID: job.ID}, nil
}

// GetJobsByBuyer возвращает заказы, размещённые пользователем.
func (s *MemoryStore) GetJobsByBuyer(ctx context.Context, email string) ([]models.Job, error) {
	return s.filterJobs(func(j models.Job) bool { return j.Buyer.Email == email }), nil
}

// GetJobs возвращает все заказы.
func (s *MemoryStore) GetJobs(ctx context.Context) ([]models.Job, error) {
	return s.filterJobs(func(models.Job) bool { return true }), nil
}

// GetJob возвращает заказ по ID или nil, если его нет.
func (s *MemoryStore) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.jobIndex(jobId); i >= 0 {
		job := cloneJob(s.jobs[i])
		return &job, nil
	}
	return nil, nil
}

// DeleteJob удаляет заказ. Предложения по нему не удаляются.
func (s *MemoryStore) DeleteJob(ctx context.Context, jobId string) (models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.jobIndex(jobId)
	if i < 0 {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	s.jobs = slices.Delete(s.jobs, i, i+1)
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// UpsertJob обновляет переданные поля заказа, а если заказа нет - создаёт его.
// ModifiedCount равен 0, если значения полей не изменились.
func (s *MemoryStore) UpsertJob(ctx context.Context, jobId string, upd models.JobUpdate) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.jobIndex(jobId); i >= 0 {
		res := models.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if upd.Apply(&s.jobs[i]) {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	job := models.Job{ID: jobId}
	upd.Apply(&job)
	s.jobs = append(s.jobs, cloneJob(job))
	return models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &jobId}, nil
}

// SearchJobs возвращает заказы по фильтру категорий и подстроке в названии.
// Заказы без дедлайна идут последними при сортировке по возрастанию и первыми при сортировке по убыванию.
func (s *MemoryStore) SearchJobs(ctx context.Context, q models.JobQuery) ([]models.Job, error) {
	search := strings.ToLower(q.Search)
	jobs := s.filterJobs(func(j models.Job) bool {
		if search != "" && !strings.Contains(strings.ToLower(j.Title), search) {
			return false
		}
		return len(q.Categories) == 0 || slices.Contains(q.Categories, j.Category)
	})

	if q.Sort == models.SortNone {
		return jobs, nil
	}
	slices.SortStableFunc(jobs, func(a, b models.Job) int {
		var c int
		switch {
		case a.Deadline == nil && b.Deadline == nil:
			c = 0
		case a.Deadline == nil:
			c = 1
		case b.Deadline == nil:
			c = -1
		default:
			c = a.Deadline.Compare(*b.Deadline)
		}
		if q.Sort == models.SortDesc {
			return -c
		}
		return c
	})
	return jobs, nil
}

// CreateBid сохраняет предложение и увеличивает счётчик предложений заказа.
func (s *MemoryStore) CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bids {
		if b.Email == bid.Email && b.JobID == bid.JobID {
			return models.InsertResult{}, models.ErrBidConflict
		}
	}

	bid.ID = uuid.New().String()
	bid.Attrs = maps.Clone(bid.Attrs)
	s.bids = append(s.bids, bid)

	if i := s.jobIndex(bid.JobID); i >= 0 {
		s.jobs[i].BidCount++
	}
	return models.InsertResult{Acknowledged: true, InsertedID: bid.ID}, nil
}

// GetUserBids возвращает предложения пользователя.
func (s *MemoryStore) GetUserBids(ctx context.Context, email string, asBuyer bool) ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bids := []models.Bid{}
	for _, b := range s.bids {
		owner := b.Email
		if asBuyer {
			owner = b.Buyer
		}
		if owner == email {
			b.Attrs = maps.Clone(b.Attrs)
			bids = append(bids, b)
		}
	}
	return bids, nil
}

// UpdateBidStatus меняет статус предложения.
func (s *MemoryStore) UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.bids {
		if s.bids[i].ID == bidId {
			s.bids[i].Status = status
			return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return models.UpdateResult{Acknowledged: true}, nil
}

func (s *MemoryStore) filterJobs(keep func(models.Job) bool) []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := []models.Job{}
	for _, j := range s.jobs {
		if keep(j) {
			jobs = append(jobs, cloneJob(j))
		}
	}
	return jobs
}

func (s *MemoryStore) jobIndex(jobId string) int {
	return slices.IndexFunc(s.jobs, func(j models.Job) bool { return j.ID == jobId })
}

func cloneJob(j models.Job) models.Job {
	j.Attrs = maps.Clone(j.Attrs)
	if j.Deadline != nil {
		d := *j.Deadline
		j.Deadline = &d
	}
	return j
}
