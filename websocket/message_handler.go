// websocket/message_handler.go
package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/LilVoxy/lostfound_chat/database"
)

// HandleInboundMessage обрабатывает кадр message от клиента: сохраняет
// сообщение в БД и рассылает его собеседнику, если тот в сети.
// Правила те же, что и на HTTP-пути: отправитель должен быть участником
// чата, чат должен быть активным.
func (manager *Manager) HandleInboundMessage(client *Client, frame Frame) {
	saved, err := database.SaveChatMessage(frame.ChatID, client.UserID, frame.Content)
	if err != nil {
		log.Printf("❌ Ошибка сохранения сообщения от клиента %d в чат %d: %v",
			client.UserID, frame.ChatID, err)
		client.sendError(describeSaveError(err))
		return
	}

	// Доставляем собеседнику, если он подключен
	chat, err := database.GetChatByID(frame.ChatID)
	if err != nil || chat == nil {
		// Чат только что существовал: сообщение сохранено, доставку пропускаем
		log.Printf("⚠️ Не удалось получить чат %d для доставки: %v", frame.ChatID, err)
	} else {
		manager.NotifyMessageCreated(chat.PeerOf(client.UserID), saved)
	}

	// Подтверждение отправителю с ID сохраненного сообщения
	confirm := Frame{
		Type:      FrameConfirmation,
		ID:        saved.ID,
		ChatID:    saved.ChatID,
		Status:    "sent",
		CreatedAt: saved.CreatedAt.Format(time.RFC3339),
	}
	if data, err := json.Marshal(confirm); err == nil {
		client.Send <- data
	}
}

// sendError отправляет клиенту кадр с описанием ошибки
func (c *Client) sendError(description string) {
	errorFrame := Frame{
		Type:    FrameError,
		Content: description,
	}
	if data, err := json.Marshal(errorFrame); err == nil {
		c.Send <- data
	}
}

// describeSaveError переводит ошибку сохранения в текст для клиента
func describeSaveError(err error) string {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return "Чат не найден"
	case errors.Is(err, database.ErrForbidden):
		return "Вы не являетесь участником этого чата"
	case errors.Is(err, database.ErrConflict):
		return "Чат закрыт, отправка сообщений недоступна"
	default:
		return "Не удалось сохранить сообщение"
	}
}
