package models

// InsertResult - подтверждение вставки документа.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult - подтверждение обновления документа.
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult - подтверждение удаления документа.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Identity - личность пользователя, зашитая в сессионный токен.
type Identity struct {
	Email string `json:"email"`
}

// SuccessResponse - ответ на операции с сессией.
type SuccessResponse struct {
	Success bool `json:"success"`
}
