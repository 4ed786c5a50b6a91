// routes/respond.go
package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/LilVoxy/lostfound_chat/database"
)

// writeJSON кодирует ответ и выставляет заголовок Content-Type
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Ошибка при кодировании JSON: %v", err)
	}
}

// writeError отправляет клиенту JSON с текстом ошибки
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeBusinessError транслирует ошибки бизнес-логики в HTTP-статусы.
// Конфликты — ожидаемое состояние, а не сбой, поэтому текст ошибки
// описывает ситуацию, а не просто сообщает о неудаче.
func writeBusinessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "Запись не найдена")
	case errors.Is(err, database.ErrForbidden):
		writeError(w, http.StatusForbidden, "Доступ запрещен")
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusConflict, "Операция конфликтует с текущим состоянием")
	default:
		log.Printf("❌ Внутренняя ошибка: %v", err)
		writeError(w, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}
