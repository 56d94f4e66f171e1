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

// JobHandler - структура для обработки HTTP-запросов по заказам.
type JobHandler struct {
	Service *services.JobService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewJobHandler создаёт новый экземпляр JobHandler.
func NewJobHandler(service *services.JobService, logger *log.Logger, timeout time.Duration) *JobHandler {
	return &JobHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateJob обрабатывает запросы для создания заказа.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var job models.Job
	if !decodeBody(w, r, &job) {
		return
	}

	result, err := h.Service.CreateJob(ctx, job)
	if err != nil {
		sendError(w, h.Logger, err, "failed to create job")
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// GetJobsByBuyer обрабатывает запросы для получения заказов пользователя.
func (h *JobHandler) GetJobsByBuyer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobs, err := h.Service.GetJobsByBuyer(ctx, r.PathValue("email"))
	if err != nil {
		sendError(w, h.Logger, err, "failed to fetch jobs")
		return
	}
	utils.SendJSON(w, http.StatusOK, jobs)
}

// GetJobs обрабатывает запросы для получения всех заказов.
func (h *JobHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobs, err := h.Service.GetJobs(ctx)
	if err != nil {
		sendError(w, h.Logger, err, "failed to fetch jobs")
		return
	}
	utils.SendJSON(w, http.StatusOK, jobs)
}

// GetJob обрабатывает запросы для получения заказа. Отсутствующий заказ - null.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	job, err := h.Service.GetJob(ctx, r.PathValue("id"))
	if err != nil {
		sendError(w, h.Logger, err, "failed to fetch job")
		return
	}
	utils.SendJSON(w, http.StatusOK, job)
}

// DeleteJob обрабатывает запросы для удаления заказа.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	result, err := h.Service.DeleteJob(ctx, r.PathValue("id"))
	if err != nil {
		sendError(w, h.Logger, err, "failed to delete job")
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// UpdateJob обрабатывает запросы для изменения заказа.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var upd models.JobUpdate
	if !decodeBody(w, r, &upd) {
		return
	}

	result, err := h.Service.UpdateJob(ctx, r.PathValue("id"), upd)
	if err != nil {
		sendError(w, h.Logger, err, "failed to update job")
		return
	}
	utils.SendJSON(w, http.StatusOK, result)
}

// SearchJobs обрабатывает запросы поиска заказов: filter, search, sort.
func (h *JobHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()
	jobs, err := h.Service.SearchJobs(ctx, query["filter"], query.Get("search"), query.Get("sort"))
	if err != nil {
		sendError(w, h.Logger, err, "failed to fetch jobs")
		return
	}
	utils.SendJSON(w, http.StatusOK, jobs)
}
