package router

import (
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/solosphere/internal/handlers"
	"github.com/senyabanana/solosphere/internal/services"
)

// Handlers - набор обработчиков, из которых собираются маршруты.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Jobs    *handlers.JobHandler
	Bids    *handlers.BidHandler
	Session *services.SessionService
	Store   handlers.Pinger
	Logger  *log.Logger
	Timeout time.Duration
	Origins []string
}

func InitRoutes(h Handlers) http.Handler {
	mux := http.NewServeMux()
	requireSession := handlers.RequireSession(h.Session, h.Logger)

	mux.HandleFunc("GET /{$}", handlers.HomeHandler)
	mux.HandleFunc("GET /ping", handlers.PingHandler(h.Store, h.Timeout))

	mux.HandleFunc("POST /jwt", h.Auth.IssueToken)
	mux.HandleFunc("GET /logout", h.Auth.Logout)

	mux.HandleFunc("POST /add-jobs", h.Jobs.CreateJob)
	mux.HandleFunc("GET /jobs/{email}", h.Jobs.GetJobsByBuyer)
	mux.HandleFunc("GET /jobs", h.Jobs.GetJobs)
	mux.HandleFunc("DELETE /job/{id}", h.Jobs.DeleteJob)
	mux.HandleFunc("GET /job/{id}", h.Jobs.GetJob)
	mux.HandleFunc("PUT /update-job/{id}", h.Jobs.UpdateJob)
	mux.HandleFunc("GET /all-jobs", h.Jobs.SearchJobs)

	mux.HandleFunc("POST /add-bid", h.Bids.CreateBid)
	mux.HandleFunc("GET /bids/{email}", requireSession(h.Bids.GetUserBids))
	mux.HandleFunc("PATCH /bid-status-updated/{id}", h.Bids.UpdateBidStatus)

	return Recovery(h.Logger, RequestLog(h.Logger, CORS(h.Origins, mux)))
}
