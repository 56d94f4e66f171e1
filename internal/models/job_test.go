package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/senyabanana/solosphere/internal/models"
)

func TestJobUnmarshal_KeepsUnknownFields(t *testing.T) {
	body := `{"title":"Logo Design","category":"design","deadline":"2024-06-01",
		"buyer":{"email":"b@x.com","name":"Bob"},"min_price":10,"description":"vector logo"}`

	var job models.Job
	if err := json.Unmarshal([]byte(body), &job); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if job.Title != "Logo Design" || job.Category != "design" {
		t.Fatalf("unexpected title/category: %q/%q", job.Title, job.Category)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if job.Deadline == nil || !job.Deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", job.Deadline, want)
	}
	if job.Buyer.Email != "b@x.com" || job.Buyer.Name != "Bob" {
		t.Fatalf("unexpected buyer: %+v", job.Buyer)
	}
	if job.BidCount != 0 {
		t.Fatalf("bid_count = %d, want 0", job.BidCount)
	}
	if job.Attrs["min_price"] != float64(10) || job.Attrs["description"] != "vector logo" {
		t.Fatalf("unexpected attrs: %v", job.Attrs)
	}
	if _, ok := job.Attrs["title"]; ok {
		t.Fatalf("known field leaked into attrs: %v", job.Attrs)
	}
}

func TestJobMarshal_FlattensAttrs(t *testing.T) {
	deadline := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	job := models.Job{
		ID:       "8c1f0f47-8d0d-4a43-9d9b-1f1f5f0f6a01",
		Title:    "Landing page",
		Category: "web",
		Deadline: &deadline,
		BidCount: 3,
		Buyer:    models.Buyer{Email: "b@x.com"},
		Attrs:    map[string]any{"description": "one page", "title": "ignored"},
	}

	out, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}

	if doc["_id"] != job.ID {
		t.Errorf("_id = %v", doc["_id"])
	}
	if doc["title"] != "Landing page" {
		t.Errorf("title = %v, known fields must win over attrs", doc["title"])
	}
	if doc["description"] != "one page" {
		t.Errorf("description = %v", doc["description"])
	}
	if doc["bid_count"] != float64(3) {
		t.Errorf("bid_count = %v", doc["bid_count"])
	}
	if doc["deadline"] != "2024-05-01T12:00:00Z" {
		t.Errorf("deadline = %v", doc["deadline"])
	}
}

func TestJobUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "NotAnObject", body: `[1,2]`},
		{name: "Null", body: `null`},
		{name: "BadDeadline", body: `{"deadline":"tomorrow"}`},
		{name: "BadTitle", body: `{"title":42}`},
		{name: "BadBuyer", body: `{"buyer":"b@x.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var job models.Job
			if err := json.Unmarshal([]byte(tt.body), &job); err == nil {
				t.Fatalf("expected error for %s", tt.body)
			}
		})
	}
}

func TestJobUpdate(t *testing.T) {
	t.Run("UnknownFieldsGoToAttrs", func(t *testing.T) {
		var upd models.JobUpdate
		if err := json.Unmarshal([]byte(`{"status":"done"}`), &upd); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if upd.Title != nil || upd.Category != nil || upd.DeadlineSet {
			t.Fatalf("unexpected known fields: %+v", upd)
		}
		if upd.Attrs["status"] != "done" {
			t.Fatalf("attrs = %v", upd.Attrs)
		}
		if upd.Empty() {
			t.Fatal("update should not be empty")
		}
	})

	t.Run("IDIsIgnored", func(t *testing.T) {
		var upd models.JobUpdate
		if err := json.Unmarshal([]byte(`{"_id":"x","title":"New"}`), &upd); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if upd.Title == nil || *upd.Title != "New" {
			t.Fatalf("title = %v", upd.Title)
		}
		if len(upd.Attrs) != 0 {
			t.Fatalf("attrs = %v", upd.Attrs)
		}
	})

	t.Run("ApplyMergesAttrs", func(t *testing.T) {
		job := models.Job{Title: "Old", Category: "web", Attrs: map[string]any{"a": 1.0}}
		var upd models.JobUpdate
		if err := json.Unmarshal([]byte(`{"title":"New","b":2,"deadline":null}`), &upd); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !upd.Apply(&job) {
			t.Fatal("Apply reported no change")
		}

		if job.Title != "New" || job.Category != "web" {
			t.Fatalf("unexpected job: %+v", job)
		}
		if job.Attrs["a"] != 1.0 || job.Attrs["b"] != 2.0 {
			t.Fatalf("attrs = %v", job.Attrs)
		}
		if job.Deadline != nil {
			t.Fatalf("deadline should be cleared, got %v", job.Deadline)
		}
	})

	t.Run("ApplySameValuesIsNoChange", func(t *testing.T) {
		deadline := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		job := models.Job{Title: "Logo", Deadline: &deadline, Attrs: map[string]any{"tags": []any{"svg"}}}
		var upd models.JobUpdate
		if err := json.Unmarshal([]byte(`{"_id":"x","title":"Logo","deadline":"2024-06-01","tags":["svg"]}`), &upd); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if upd.Apply(&job) {
			t.Fatalf("Apply reported a change: %+v", job)
		}
		if (models.JobUpdate{}).Apply(&job) {
			t.Fatal("empty update reported a change")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		var upd models.JobUpdate
		if err := json.Unmarshal([]byte(`{}`), &upd); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !upd.Empty() {
			t.Fatalf("expected empty update, got %+v", upd)
		}
	})
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]models.SortOrder{
		"":     models.SortNone,
		"asc":  models.SortAsc,
		"dsc":  models.SortDesc,
		"desc": models.SortDesc,
		"ASC":  models.SortDesc,
	}
	for in, want := range cases {
		if got := models.ParseSortOrder(in); got != want {
			t.Errorf("ParseSortOrder(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDeadline(t *testing.T) {
	for _, s := range []string{"2024-06-01", "2024-06-01T00:00:00", "2024-06-01T00:00:00.000Z", "2024-06-01T03:00:00+03:00"} {
		got, err := models.ParseDeadline(s)
		if err != nil {
			t.Errorf("ParseDeadline(%q) error: %v", s, err)
			continue
		}
		if want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
			t.Errorf("ParseDeadline(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := models.ParseDeadline("06/01/2024"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestBidUnmarshal(t *testing.T) {
	body := `{"jobId":"8c1f0f47-8d0d-4a43-9d9b-1f1f5f0f6a01","email":"s@x.com","buyer":"b@x.com","price":100,"status":"Pending"}`

	var bid models.Bid
	if err := json.Unmarshal([]byte(body), &bid); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bid.Email != "s@x.com" || bid.Buyer != "b@x.com" || bid.Status != models.PendingBid {
		t.Fatalf("unexpected bid: %+v", bid)
	}
	if bid.Attrs["price"] != float64(100) {
		t.Fatalf("attrs = %v", bid.Attrs)
	}

	out, err := json.Marshal(bid)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	if doc["jobId"] != bid.JobID || doc["price"] != float64(100) {
		t.Fatalf("unexpected doc: %v", doc)
	}
}
