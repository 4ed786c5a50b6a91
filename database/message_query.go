// database/message_query.go
package database

import (
	"fmt"
	"log"
)

// GetChatMessages возвращает все сообщения чата в порядке создания.
// Доступ разрешен только участникам чата. Побочный эффект: все чужие
// сообщения в чате помечаются прочитанными — клиент получает историю
// и подтверждает прочтение одним запросом.
func GetChatMessages(chatID, userID int) ([]Message, error) {
	chat, err := GetChatByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, fmt.Errorf("чат %d не найден: %w", chatID, ErrNotFound)
	}
	if !chat.IsParticipant(userID) {
		return nil, fmt.Errorf("пользователь %d не является участником чата %d: %w",
			userID, chatID, ErrForbidden)
	}

	rows, err := DB.Query(`
		SELECT id, chat_id, sender_id, message, created_at, read_status
		FROM messages
		WHERE chat_id = ?
		ORDER BY created_at ASC, id ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		var stored string

		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &stored, &msg.CreatedAt, &msg.ReadStatus); err != nil {
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

		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// Помечаем чужие сообщения прочитанными
	if len(messages) > 0 {
		if err := MarkMessagesAsRead(chatID, userID); err != nil {
			// История уже получена, поэтому ошибку отметки только логируем
			log.Printf("❌ Ошибка обновления статуса прочтения в чате %d: %v", chatID, err)
		}
	}

	return messages, nil
}

// GetUnreadTotal возвращает общее количество непрочитанных сообщений
// пользователя по всем его чатам
func GetUnreadTotal(userID int) (int, error) {
	var total int
	err := DB.QueryRow(`
		SELECT COUNT(*)
		FROM messages m
		JOIN chats c ON m.chat_id = c.id
		WHERE (c.requester_id = ? OR c.responder_id = ?)
		  AND m.sender_id != ?
		  AND m.read_status = FALSE
	`, userID, userID, userID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
