// routes/request_handlers.go
package routes

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/lostfound_chat/database"
	"github.com/LilVoxy/lostfound_chat/middleware"
	"github.com/LilVoxy/lostfound_chat/websocket"
)

// CreateRequestBody — тело запроса на создание запроса на чат
type CreateRequestBody struct {
	ItemID      int    `json:"itemId"`
	ResponderID int    `json:"responderId"`
	Message     string `json:"message"`
}

// RequestSummary — ответ API с данными запроса на чат
type RequestSummary struct {
	RequestID   int    `json:"requestId"`
	ItemID      int    `json:"itemId"`
	RequesterID int    `json:"requesterId"`
	ResponderID int    `json:"responderId"`
	Status      string `json:"status"`
	ChatID      int    `json:"chatId,omitempty"`
}

// CreateRequestHandler обрабатывает создание запроса на чат.
// Повторный запрос по той же вещи к тому же пользователю возвращает 409
// вместе с текущим статусом существующего запроса, чтобы клиент показал
// его вместо формы создания.
func CreateRequestHandler(wsManager *websocket.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		var body CreateRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат тела запроса")
			return
		}

		if body.ItemID <= 0 || body.ResponderID <= 0 {
			writeError(w, http.StatusBadRequest, "Не указана вещь или получатель запроса")
			return
		}
		if body.ResponderID == requesterID {
			writeError(w, http.StatusBadRequest, "Нельзя отправить запрос самому себе")
			return
		}
		if body.Message == "" {
			writeError(w, http.StatusBadRequest, "Текст запроса не может быть пустым")
			return
		}

		request, err := database.CreateChatRequest(body.ItemID, requesterID, body.ResponderID, body.Message)
		if err != nil {
			if errors.Is(err, database.ErrConflict) && request != nil {
				// Дубликат: сообщаем клиенту статус существующего запроса
				writeJSON(w, http.StatusConflict, map[string]interface{}{
					"success":   false,
					"message":   "Запрос по этой вещи уже существует",
					"requestId": request.ID,
					"status":    request.Status,
				})
				return
			}
			writeBusinessError(w, err)
			return
		}

		// Уведомляем получателя, если он в сети
		wsManager.NotifyRequestStatusChanged(body.ResponderID, request.ID, request.Status, 0)

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success":   true,
			"requestId": request.ID,
			"status":    request.Status,
		})
	}
}

// ResolveRequestBody — тело запроса на принятие/отклонение
type ResolveRequestBody struct {
	Action string `json:"action"`
}

// ResolveRequestHandler обрабатывает решение по запросу на чат.
// Принять или отклонить запрос может только его адресат, и только один раз.
func ResolveRequestHandler(wsManager *websocket.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		requestID, err := strconv.Atoi(mux.Vars(r)["requestId"])
		if err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат ID запроса")
			return
		}

		var body ResolveRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат тела запроса")
			return
		}
		if body.Action != database.RequestStatusAccepted && body.Action != database.RequestStatusDeclined {
			writeError(w, http.StatusBadRequest, "Действие должно быть accepted или declined")
			return
		}

		chatID, err := database.ResolveChatRequest(requestID, body.Action, actorID)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		// Уведомляем автора запроса о решении. Статус уже зафиксирован в БД,
		// поэтому недоставленное уведомление он увидит при следующем обновлении.
		request, lookupErr := database.GetChatRequestByID(requestID)
		if lookupErr != nil || request == nil {
			log.Printf("⚠️ Не удалось получить запрос %d для уведомления: %v", requestID, lookupErr)
		} else {
			wsManager.NotifyRequestStatusChanged(request.RequesterID, requestID, body.Action, chatID)
		}

		response := map[string]interface{}{
			"success": true,
			"status":  body.Action,
		}
		if chatID > 0 {
			response["chatId"] = chatID
		}
		writeJSON(w, http.StatusOK, response)
	}
}

// CheckRequestHandler возвращает последний запрос пользователя по вещи.
// Клиент вызывает его перед показом формы, чтобы не создавать дубликат.
func CheckRequestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		itemID, err := strconv.Atoi(r.URL.Query().Get("itemId"))
		if err != nil || itemID <= 0 {
			writeError(w, http.StatusBadRequest, "Отсутствует или неверен параметр itemId")
			return
		}

		request, err := database.CheckChatRequest(itemID, requesterID)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		if request == nil {
			writeJSON(w, http.StatusOK, map[string]interface{}{"status": "none"})
			return
		}

		writeJSON(w, http.StatusOK, RequestSummary{
			RequestID:   request.ID,
			ItemID:      request.ItemID,
			RequesterID: request.RequesterID,
			ResponderID: request.ResponderID,
			Status:      request.Status,
			ChatID:      request.ChatID,
		})
	}
}
