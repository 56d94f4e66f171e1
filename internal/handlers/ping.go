package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/solosphere/internal/utils"
)

// Pinger - хранилище, доступность которого можно проверить.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HomeHandler обрабатывает GET запрос к /
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "Hello from SoloSphere Server...."); err != nil {
		log.Println(err)
	}
}

// PingHandler обрабатывает GET запрос к /ping: проверяет доступность хранилища
func PingHandler(store Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Println(err)
			utils.SendErrorResponse(w, http.StatusServiceUnavailable, "store is unavailable")
			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "ok"); err != nil {
			log.Println(err)
		}
	}
}
