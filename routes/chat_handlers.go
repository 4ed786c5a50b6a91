// routes/chat_handlers.go
package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/lostfound_chat/database"
	"github.com/LilVoxy/lostfound_chat/middleware"
)

// ChatInfo — информация о чате для списка чатов
type ChatInfo struct {
	ID              int       `json:"id"`
	RequestID       int       `json:"requestId"`
	ItemID          int       `json:"itemId"`
	RequesterID     int       `json:"requesterId"`
	ResponderID     int       `json:"responderId"`
	Status          string    `json:"status"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime string    `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ChatsResponse — ответ API для списка чатов
type ChatsResponse struct {
	Chats []ChatInfo `json:"chats"`
}

// GetChatsHandler возвращает список чатов пользователя с последним
// сообщением и количеством непрочитанных
func GetChatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Пользователь не аутентифицирован")
			return
		}

		chats, err := database.GetUserChats(userID)
		if err != nil {
			writeBusinessError(w, err)
			return
		}

		response := ChatsResponse{Chats: make([]ChatInfo, 0, len(chats))}
		for _, chat := range chats {
			info := ChatInfo{
				ID:          chat.ID,
				RequestID:   chat.RequestID,
				ItemID:      chat.ItemID,
				RequesterID: chat.RequesterID,
				ResponderID: chat.ResponderID,
				Status:      chat.Status,
				UnreadCount: chat.UnreadCount,
				CreatedAt:   chat.CreatedAt,
			}

			if chat.LastMessage != nil {
				info.LastMessage = chat.LastMessage.Message
				info.LastMessageTime = formatMessageTime(chat.LastMessage.CreatedAt)
			}

			response.Chats = append(response.Chats, info)
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// CloseChatHandler закрывает чат. Операция идемпотентна:
// повторное закрытие возвращает успех.
func CloseChatHandler() http.HandlerFunc {
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

		if err := database.CloseChat(chatID, userID); err != nil {
			writeBusinessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  database.ChatStatusClosed,
		})
	}
}

// formatMessageTime форматирует время сообщения: для сегодняшних
// сообщений показываем только время, для остальных — дату и время
func formatMessageTime(t time.Time) string {
	now := time.Now()
	if t.Day() != now.Day() || t.Month() != now.Month() || t.Year() != now.Year() {
		return t.Format("02.01.2006 15:04")
	}
	return t.Format("15:04")
}
