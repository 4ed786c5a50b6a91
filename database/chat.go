// database/chat.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// Chat представляет переписку между автором запроса и владельцем находки
// по конкретной вещи. Чат создается только при принятии запроса.
type Chat struct {
	ID          int
	RequestID   int
	ItemID      int
	RequesterID int
	ResponderID int
	Status      string
	CreatedAt   time.Time
	LastMessage *Message
	UnreadCount int
}

// IsParticipant сообщает, участвует ли пользователь в чате
func (c *Chat) IsParticipant(userID int) bool {
	return userID == c.RequesterID || userID == c.ResponderID
}

// PeerOf возвращает ID собеседника для указанного участника
func (c *Chat) PeerOf(userID int) int {
	if userID == c.RequesterID {
		return c.ResponderID
	}
	return c.RequesterID
}

// GetChatByID возвращает чат по его ID или nil, если чата нет
func GetChatByID(chatID int) (*Chat, error) {
	var chat Chat
	err := DB.QueryRow(`
		SELECT id, request_id, item_id, requester_id, responder_id, status, created_at
		FROM chats
		WHERE id = ?
	`, chatID).Scan(
		&chat.ID, &chat.RequestID, &chat.ItemID, &chat.RequesterID,
		&chat.ResponderID, &chat.Status, &chat.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &chat, nil
}

// GetUserChats возвращает все чаты, в которых участвует пользователь,
// вместе с последним сообщением и количеством непрочитанных.
// Чаты отсортированы по времени последней активности.
func GetUserChats(userID int) ([]Chat, error) {
	rows, err := DB.Query(`
		SELECT
			c.id,
			c.request_id,
			c.item_id,
			c.requester_id,
			c.responder_id,
			c.status,
			c.created_at,
			IFNULL(
				(SELECT created_at FROM messages
				 WHERE chat_id = c.id
				 ORDER BY created_at DESC LIMIT 1),
				c.created_at
			) as last_activity,
			(SELECT COUNT(*) FROM messages
			 WHERE chat_id = c.id AND sender_id != ? AND read_status = FALSE
			) as unread_count
		FROM chats c
		WHERE c.requester_id = ? OR c.responder_id = ?
		ORDER BY last_activity DESC
	`, userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var chat Chat
		var lastActivity time.Time

		if err := rows.Scan(
			&chat.ID, &chat.RequestID, &chat.ItemID, &chat.RequesterID,
			&chat.ResponderID, &chat.Status, &chat.CreatedAt,
			&lastActivity, &chat.UnreadCount,
		); err != nil {
			return nil, err
		}

		// Последнее сообщение достаем отдельно, так как его нужно расшифровать
		lastMsg, err := GetChatLastMessage(chat.ID)
		if err != nil {
			return nil, err
		}
		chat.LastMessage = lastMsg

		chats = append(chats, chat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return chats, nil
}

// CloseChat закрывает чат. Закрыть чат может любой из двух участников.
// Повторное закрытие уже закрытого чата не считается ошибкой — в отличие
// от повторного решения по запросу, у закрытия нет побочных эффектов,
// которые можно было бы задублировать.
func CloseChat(chatID, actorID int) error {
	chat, err := GetChatByID(chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return fmt.Errorf("чат %d не найден: %w", chatID, ErrNotFound)
	}
	if !chat.IsParticipant(actorID) {
		return fmt.Errorf("пользователь %d не является участником чата %d: %w",
			actorID, chatID, ErrForbidden)
	}

	if chat.Status == ChatStatusClosed {
		log.Printf("ℹ️ Чат %d уже закрыт", chatID)
		return nil
	}

	_, err = DB.Exec(
		"UPDATE chats SET status = ? WHERE id = ?",
		ChatStatusClosed, chatID,
	)
	if err != nil {
		log.Printf("❌ Ошибка закрытия чата %d: %v", chatID, err)
		return err
	}

	log.Printf("✅ Чат %d закрыт пользователем %d", chatID, actorID)
	return nil
}
