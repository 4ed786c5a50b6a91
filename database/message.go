// database/message.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Message представляет сообщение в чате
type Message struct {
	ID         int
	ChatID     int
	SenderID   int
	Message    string
	CreatedAt  time.Time
	ReadStatus bool
}

// SaveChatMessage сохраняет сообщение в чате.
// Отправитель должен быть участником чата, а чат — активным: сообщения
// в закрытый чат отклоняются с ErrConflict и не сохраняются.
// Тело сообщения сжимается и шифруется перед записью в БД.
func SaveChatMessage(chatID, senderID int, body string) (*Message, error) {
	if body == "" {
		return nil, fmt.Errorf("текст сообщения не может быть пустым")
	}

	chat, err := GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("чат %d не найден: %w", chatID, ErrNotFound)
	}
	if !chat.IsParticipant(senderID) {
		return nil, fmt.Errorf("пользователь %d не является участником чата %d: %w",
			senderID, chatID, ErrForbidden)
	}
	if chat.Status != ChatStatusActive {
		return nil, fmt.Errorf("чат %d закрыт: %w", chatID, ErrConflict)
	}

	// Шифруем сообщение перед сохранением в БД
	stored, err := encryptForDB(body)
	if err != nil {
		log.Printf("❌ Ошибка шифрования сообщения: %v", err)
		return nil, err
	}

	result, err := DB.Exec(
		"INSERT INTO messages (chat_id, sender_id, message) VALUES (?, ?, ?)",
		chatID, senderID, stored,
	)
	if err != nil {
		log.Printf("❌ Ошибка сохранения сообщения: %v", err)
		return nil, err
	}

	messageID, err := result.LastInsertId()
	if err != nil {
		log.Printf("❌ Ошибка получения ID сообщения: %v", err)
		return nil, err
	}

	log.Printf("✅ Сообщение ID=%d сохранено в чате %d (статус: непрочитано)", messageID, chatID)

	return &Message{
		ID:        int(messageID),
		ChatID:    chatID,
		SenderID:  senderID,
		Message:   body,
		CreatedAt: time.Now(),
	}, nil
}

// MarkMessagesAsRead отмечает все чужие сообщения в чате как прочитанные
func MarkMessagesAsRead(chatID, userID int) error {
	_, err := DB.Exec(`
		UPDATE messages
		SET read_status = TRUE
		WHERE chat_id = ? AND sender_id != ? AND read_status = FALSE
	`, chatID, userID)
	return err
}

// GetChatLastMessage возвращает последнее сообщение в чате
func GetChatLastMessage(chatID int) (*Message, error) {
	var msg Message
	var stored string

	err := DB.QueryRow(`
		SELECT id, chat_id, sender_id, message, created_at, read_status
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, chatID).Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &stored, &msg.CreatedAt, &msg.ReadStatus)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	// Расшифровываем сообщение
	decrypted, err := decryptFromDB(stored)
	if err != nil {
		log.Printf("❌ Ошибка расшифровки сообщения %d: %v", msg.ID, err)
		msg.Message = "[Ошибка расшифровки]"
	} else {
		msg.Message = decrypted
	}

	return &msg, nil
}
