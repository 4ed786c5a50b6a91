// websocket/connection_handler.go
package websocket

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HandleConnections обрабатывает WebSocket-соединения
func (manager *Manager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	// Получаем ID пользователя из URL
	params := mux.Vars(r)
	userIdStr := params["userId"]

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		log.Printf("❌ Невалидный ID пользователя: %s", userIdStr)
		http.Error(w, "Невалидный ID пользователя", http.StatusBadRequest)
		return
	}

	// Проверяем токен: подключаться от имени пользователя может только он сам
	tokenUserId, err := manager.validate(r.URL.Query().Get("token"))
	if err != nil {
		log.Printf("❌ Отклонено подключение пользователя %d: %v", userId, err)
		http.Error(w, "Недействительный токен", http.StatusUnauthorized)
		return
	}
	if tokenUserId != userId {
		log.Printf("❌ Токен пользователя %d не подходит для подключения от имени %d", tokenUserId, userId)
		http.Error(w, "Токен не соответствует пользователю", http.StatusForbidden)
		return
	}

	// Устанавливаем WebSocket-соединение
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("❌ Ошибка при установке WebSocket-соединения:", err)
		return
	}

	client := &Client{
		UserID:  userId,
		ConnID:  uuid.NewString(),
		Socket:  conn,
		Send:    make(chan []byte, 256),
		Manager: manager,
	}

	// Регистрируем клиента в менеджере
	manager.Register <- client

	log.Printf("✅ Пользователь %d подключился с адреса %s (соединение %s)",
		userId, r.RemoteAddr, client.ConnID)

	// Запускаем горутины для чтения и отправки сообщений
	go client.readPump()
	go client.writePump()
}
