// websocket/events.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/LilVoxy/lostfound_chat/database"
)

// NotifyMessageCreated отправляет получателю событие о новом сообщении.
// Доставка негарантированная: сообщение уже сохранено в БД, и клиент
// дочитает пропущенное при следующем запросе истории.
func (manager *Manager) NotifyMessageCreated(recipientID int, msg *database.Message) {
	frame := Frame{
		Type:      FrameMessageCreated,
		ChatID:    msg.ChatID,
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Message,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}

	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("❌ Ошибка сериализации события о сообщении: %v", err)
		return
	}

	if manager.PublishToUser(recipientID, data) {
		log.Printf("✅ Событие о сообщении %d доставлено пользователю %d", msg.ID, recipientID)
	} else {
		log.Printf("ℹ️ Получатель %d не в сети, сообщение сохранено", recipientID)
	}
}

// NotifyRequestStatusChanged уведомляет пользователя об изменении статуса
// запроса на чат. Для принятых запросов передается ID созданного чата,
// чтобы обе стороны могли начать переписку без обновления страницы.
func (manager *Manager) NotifyRequestStatusChanged(recipientID, requestID int, status string, chatID int) {
	frame := Frame{
		Type:      FrameRequestStatusChanged,
		RequestID: requestID,
		Status:    status,
		ChatID:    chatID,
	}

	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("❌ Ошибка сериализации события о статусе запроса: %v", err)
		return
	}

	if manager.PublishToUser(recipientID, data) {
		log.Printf("✅ Событие о запросе %d (%s) доставлено пользователю %d", requestID, status, recipientID)
	} else {
		log.Printf("ℹ️ Пользователь %d не в сети, статус запроса %d он увидит при обновлении", recipientID, requestID)
	}
}
