package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/senyabanana/solosphere/internal/models"
	"github.com/senyabanana/solosphere/internal/repository"
	"github.com/senyabanana/solosphere/internal/services"

	"github.com/google/uuid"
)

func newServices() (*services.JobService, *services.BidService) {
	store := repository.NewMemoryStore()
	return services.NewJobService(store), services.NewBidService(store)
}

func TestJobService_InvalidID(t *testing.T) {
	ctx := context.Background()
	jobs, _ := newServices()

	if _, err := jobs.GetJob(ctx, "507f191e810c19729de860ea"); !errors.Is(err, models.ErrInvalidID) {
		t.Errorf("GetJob error = %v", err)
	}
	if _, err := jobs.DeleteJob(ctx, "nope"); !errors.Is(err, models.ErrInvalidID) {
		t.Errorf("DeleteJob error = %v", err)
	}
	if _, err := jobs.UpdateJob(ctx, "", models.JobUpdate{}); !errors.Is(err, models.ErrInvalidID) {
		t.Errorf("UpdateJob error = %v", err)
	}
}

func TestJobService_GetAbsentJobIsNil(t *testing.T) {
	jobs, _ := newServices()
	job, err := jobs.GetJob(context.Background(), uuid.New().String())
	if err != nil || job != nil {
		t.Fatalf("got %+v, %v; want nil, nil", job, err)
	}
}

func TestJobService_UpdateAbsentJobUpserts(t *testing.T) {
	ctx := context.Background()
	jobs, _ := newServices()
	id := uuid.New().String()

	res, err := jobs.UpdateJob(ctx, id, models.JobUpdate{Attrs: map[string]any{"status": "done"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.UpsertedCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	job, _ := jobs.GetJob(ctx, id)
	if job == nil || job.Attrs["status"] != "done" {
		t.Fatalf("job = %+v", job)
	}
}

func TestJobService_SearchJobs(t *testing.T) {
	ctx := context.Background()
	jobs, _ := newServices()
	for _, j := range []models.Job{
		{Title: "Logo Design", Category: "design"},
		{Title: "Brand book", Category: "design"},
		{Title: "Shop", Category: "web"},
	} {
		if _, err := jobs.CreateJob(ctx, j); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, _ := jobs.SearchJobs(ctx, []string{""}, "", "")
	if len(all) != 3 {
		t.Fatalf("empty filter should match everything, got %d", len(all))
	}
	design, _ := jobs.SearchJobs(ctx, []string{"design"}, "", "asc")
	if len(design) != 2 {
		t.Fatalf("design = %d, want 2", len(design))
	}
	logo, _ := jobs.SearchJobs(ctx, []string{"design"}, "logo", "")
	if len(logo) != 1 || logo[0].Title != "Logo Design" {
		t.Fatalf("logo = %+v", logo)
	}
}

func TestBidService_PlaceBid(t *testing.T) {
	ctx := context.Background()
	jobs, bids := newServices()
	created, _ := jobs.CreateJob(ctx, models.Job{Title: "Logo", Buyer: models.Buyer{Email: "b@x.com"}})

	tests := []struct {
		name    string
		bid     models.Bid
		wantErr func(error) bool
	}{
		{
			name: "MissingEmail",
			bid:  models.Bid{JobID: created.InsertedID},
			wantErr: func(err error) bool {
				var resp *models.ErrorResponse
				return errors.As(err, &resp) && resp.StatusCode == http.StatusBadRequest
			},
		},
		{
			name:    "InvalidJobID",
			bid:     models.Bid{JobID: "abc", Email: "s@x.com"},
			wantErr: func(err error) bool { return errors.Is(err, models.ErrInvalidID) },
		},
		{
			name:    "Success",
			bid:     models.Bid{JobID: created.InsertedID, Email: "s@x.com", Buyer: "b@x.com"},
			wantErr: func(err error) bool { return err == nil },
		},
		{
			name:    "Duplicate",
			bid:     models.Bid{JobID: created.InsertedID, Email: "s@x.com", Buyer: "b@x.com"},
			wantErr: func(err error) bool { return errors.Is(err, models.ErrBidConflict) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := bids.PlaceBid(ctx, tt.bid); !tt.wantErr(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	placed, _ := bids.GetUserBids(ctx, models.Identity{Email: "s@x.com"}, "s@x.com", false)
	if len(placed) != 1 || placed[0].Status != models.PendingBid {
		t.Fatalf("placed = %+v, want one pending bid", placed)
	}
	job, _ := jobs.GetJob(ctx, created.InsertedID)
	if job.BidCount != 1 {
		t.Fatalf("bid_count = %d, want 1", job.BidCount)
	}
}

func TestBidService_GetUserBidsRequiresMatchingIdentity(t *testing.T) {
	_, bids := newServices()
	ctx := context.Background()

	if _, err := bids.GetUserBids(ctx, models.Identity{Email: "b@x.com"}, "a@x.com", true); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if _, err := bids.GetUserBids(ctx, models.Identity{}, "", false); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("empty identity error = %v, want ErrUnauthorized", err)
	}
	got, err := bids.GetUserBids(ctx, models.Identity{Email: "a@x.com"}, "a@x.com", true)
	if err != nil || got == nil {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestBidService_UpdateBidStatusValidatesID(t *testing.T) {
	_, bids := newServices()
	if _, err := bids.UpdateBidStatus(context.Background(), "bad", models.RejectedBid); !errors.Is(err, models.ErrInvalidID) {
		t.Fatalf("error = %v, want ErrInvalidID", err)
	}
}
