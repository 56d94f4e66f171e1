package utils

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/senyabanana/solosphere/internal/models"

	"github.com/google/uuid"
)

// MaxBodyBytes - максимальный размер тела запроса
const MaxBodyBytes = 1 << 20

// DecodeJSON разбирает тело запроса, ограничивая его размер MaxBodyBytes
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
}

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	})
}

// SendJSON отправляет значение в формате JSON
func SendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

// ParseID проверяет, что идентификатор документа является UUID, и возвращает его
// каноническую запись: нижний регистр, с дефисами, без префиксов и скобок
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// ParseOptionalBool разбирает необязательный булев параметр запроса; пустая строка - false
func ParseOptionalBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
