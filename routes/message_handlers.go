// routes/message_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/lostfound_chat/database"
	"github.com/LilVoxy/lostfound_chat/middleware"
	"github.com/LilVoxy/lostfound_chat/websocket"
)

// MessageInfo — сообщение в ответе API
type MessageInfo struct {
	ID         int       `json:"id"`
	ChatID     int       `json:"chatId"`
	SenderID   int       `json:"senderId"`
	Content    string    `json:"content"`
	Timestamp  string    `json:"timestamp"`
	CreatedAt  time.Time `json:"createdAt"`
	ReadStatus bool      `json:"readStatus"`
}

// MessagesResponse — ответ API для истории сообщений
type MessagesResponse struct {
	Messages []MessageInfo `json:"messages"`
}

// SendMessageBody — тело запроса на отправку сообщения
type SendMessageBody struct {
	Content string `json:"content"`
}

// GetMessagesHandler возвращает историю сообщений чата.
// Побочный эффект: чужие сообщения в чате помечаются прочитанными.
func GetMessagesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		chatID, err := strconv.Atoi(mux.Vars(r)["chatId"])
		if err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат ID чата")
			return
		}

		messages, err := database.GetChatMessages(chatID, userID)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		response := MessagesResponse{Messages: make([]MessageInfo, 0, len(messages))}
		for _, msg := range messages {
			response.Messages = append(response.Messages, MessageInfo{
				ID:         msg.ID,
				ChatID:     msg.ChatID,
				SenderID:   msg.SenderID,
				Content:    msg.Message,
				Timestamp:  msg.CreatedAt.Format("15:04"),
				CreatedAt:  msg.CreatedAt,
				ReadStatus: msg.ReadStatus,
			})
		}

		writeJSON(w, http.StatusOK, response)
		log.Printf("✅ Отправлено %d сообщений чата %d пользователю %d", len(messages), chatID, userID)
	}
}

// SendMessageHandler сохраняет сообщение и доставляет его собеседнику,
// если тот подключен. Ошибка доставки не влияет на результат запроса:
// сообщение уже сохранено в БД.
func SendMessageHandler(wsManager *websocket.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		senderID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		chatID, err := strconv.Atoi(mux.Vars(r)["chatId"])
		if err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат ID чата")
			return
		}

		var body SendMessageBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Неверный формат тела запроса")
			return
		}
		if body.Content == "" {
			writeError(w, http.StatusBadRequest, "Текст сообщения не может быть пустым")
			return
		}

		saved, err := database.SaveChatMessage(chatID, senderID, body.Content)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		// Доставляем собеседнику, если он в сети
		chat, lookupErr := database.GetChatByID(chatID)
		if lookupErr != nil || chat == nil {
			log.Printf("⚠️ Не удалось получить чат %d для доставки: %v", chatID, lookupErr)
		} else {
			wsManager.NotifyMessageCreated(chat.PeerOf(senderID), saved)
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success":   true,
			"messageId": saved.ID,
			"chatId":    saved.ChatID,
		})
	}
}

// UnreadCountHandler возвращает общее число непрочитанных сообщений
func UnreadCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		total, err := database.GetUnreadTotal(userID)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"unread": total})
	}
}
