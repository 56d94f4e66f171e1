package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// Buyer описывает пользователя, разместившего заказ.
type Buyer struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Job представляет модель заказа.
//
// Поля, которые сервис не интерпретирует (описание, бюджет и т.п.),
// хранятся в Attrs и сериализуются на верхний уровень документа.
type Job struct {
	ID       string
	Title    string
	Category string
	Deadline *time.Time
	BidCount int
	Buyer    Buyer
	Attrs    map[string]any
}

var jobFields = []string{"_id", "title", "category", "deadline", "bid_count", "buyer"}

// MarshalJSON сериализует заказ в плоский документ.
func (j Job) MarshalJSON() ([]byte, error) {
	fields := map[string]any{
		"_id":       j.ID,
		"title":     j.Title,
		"category":  j.Category,
		"bid_count": j.BidCount,
		"buyer":     j.Buyer,
		"deadline":  nil,
	}
	if j.Deadline != nil {
		fields["deadline"] = j.Deadline.UTC().Format(time.RFC3339)
	}
	return mergeDocument(fields, j.Attrs)
}

// UnmarshalJSON разбирает документ заказа.
func (j *Job) UnmarshalJSON(data []byte) error {
	fields, attrs, err := splitDocument(data, jobFields...)
	if err != nil {
		return err
	}

	var job Job
	if job.ID, err = decodeString(fields["_id"]); err != nil {
		return fmt.Errorf("invalid _id: %w", err)
	}
	if job.Title, err = decodeString(fields["title"]); err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}
	if job.Category, err = decodeString(fields["category"]); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	if job.Deadline, err = decodeDeadline(fields["deadline"]); err != nil {
		return err
	}
	if raw, ok := fields["bid_count"]; ok && !isNull(raw) {
		if err = json.Unmarshal(raw, &job.BidCount); err != nil {
			return fmt.Errorf("invalid bid_count: %w", err)
		}
	}
	if raw, ok := fields["buyer"]; ok && !isNull(raw) {
		if err = json.Unmarshal(raw, &job.Buyer); err != nil {
			return fmt.Errorf("invalid buyer: %w", err)
		}
	}
	job.Attrs = attrs
	*j = job
	return nil
}

// JobUpdate - набор полей для частичного обновления заказа.
// Nil означает, что поле не передано.
type JobUpdate struct {
	Title       *string
	Category    *string
	Deadline    *time.Time
	DeadlineSet bool
	BidCount    *int
	Buyer       *Buyer
	Attrs       map[string]any
}

// UnmarshalJSON разбирает тело запроса на обновление. Поле _id игнорируется.
func (u *JobUpdate) UnmarshalJSON(data []byte) error {
	fields, attrs, err := splitDocument(data, jobFields...)
	if err != nil {
		return err
	}

	var upd JobUpdate
	if raw, ok := fields["title"]; ok {
		s, err := decodeString(raw)
		if err != nil {
			return fmt.Errorf("invalid title: %w", err)
		}
		upd.Title = &s
	}
	if raw, ok := fields["category"]; ok {
		s, err := decodeString(raw)
		if err != nil {
			return fmt.Errorf("invalid category: %w", err)
		}
		upd.Category = &s
	}
	if raw, ok := fields["deadline"]; ok {
		if upd.Deadline, err = decodeDeadline(raw); err != nil {
			return err
		}
		upd.DeadlineSet = true
	}
	if raw, ok := fields["bid_count"]; ok && !isNull(raw) {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("invalid bid_count: %w", err)
		}
		upd.BidCount = &n
	}
	if raw, ok := fields["buyer"]; ok && !isNull(raw) {
		var b Buyer
		if err := json.Unmarshal(raw, &b); err != nil {
			return fmt.Errorf("invalid buyer: %w", err)
		}
		upd.Buyer = &b
	}
	if len(attrs) > 0 {
		upd.Attrs = attrs
	}
	*u = upd
	return nil
}

// Empty сообщает, что обновление не содержит ни одного поля.
func (u JobUpdate) Empty() bool {
	return u.Title == nil && u.Category == nil && !u.DeadlineSet &&
		u.BidCount == nil && u.Buyer == nil && len(u.Attrs) == 0
}

// Apply накладывает обновление на заказ и сообщает, изменилось ли что-нибудь.
func (u JobUpdate) Apply(job *Job) bool {
	changed := false
	if u.Title != nil && job.Title != *u.Title {
		job.Title = *u.Title
		changed = true
	}
	if u.Category != nil && job.Category != *u.Category {
		job.Category = *u.Category
		changed = true
	}
	if u.DeadlineSet && !sameDeadline(job.Deadline, u.Deadline) {
		job.Deadline = u.Deadline
		changed = true
	}
	if u.BidCount != nil && job.BidCount != *u.BidCount {
		job.BidCount = *u.BidCount
		changed = true
	}
	if u.Buyer != nil && job.Buyer != *u.Buyer {
		job.Buyer = *u.Buyer
		changed = true
	}
	for key, value := range u.Attrs {
		if current, ok := job.Attrs[key]; ok && reflect.DeepEqual(current, value) {
			continue
		}
		if job.Attrs == nil {
			job.Attrs = make(map[string]any, len(u.Attrs))
		}
		job.Attrs[key] = value
		changed = true
	}
	return changed
}

func sameDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// SortOrder - порядок сортировки заказов по дедлайну.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder: "asc" - по возрастанию, любое другое непустое значение - по убыванию.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "":
		return SortNone
	case "asc":
		return SortAsc
	default:
		return SortDesc
	}
}

// JobQuery - параметры поиска заказов.
type JobQuery struct {
	Categories []string
	Search     string
	Sort       SortOrder
}
