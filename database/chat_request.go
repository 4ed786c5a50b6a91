// database/chat_request.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Статусы запроса на чат
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusDeclined = "declined"
)

// Статусы чата
const (
	ChatStatusActive = "active"
	ChatStatusClosed = "closed"
)

// ChatRequest представляет запрос одного пользователя другому
// на обсуждение конкретной вещи
type ChatRequest struct {
	ID          int
	ItemID      int
	RequesterID int
	ResponderID int
	Message     string
	Status      string
	CreatedAt   time.Time
	// ChatID заполняется только для принятых запросов
	ChatID int
}

// Код ошибки MySQL для нарушения уникального ключа
const mysqlDuplicateEntry = 1062

// CreateChatRequest создает новый запрос на чат со статусом pending.
// Если запрос с такой же тройкой (вещь, отправитель, получатель) уже
// существует, возвращается существующий запрос и ошибка ErrConflict —
// дубликат не создается и не сливается с существующим.
func CreateChatRequest(itemID, requesterID, responderID int, message string) (*ChatRequest, error) {
	if requesterID == responderID {
		return nil, fmt.Errorf("отправитель и получатель запроса совпадают (ID %d)", requesterID)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("текст запроса не может быть пустым")
	}

	// Сначала проверяем, нет ли уже запроса между этой парой по этой вещи
	existing, err := findChatRequest(itemID, requesterID, responderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("ℹ️ Запрос по вещи %d от %d к %d уже существует (ID: %d, статус: %s)",
			itemID, requesterID, responderID, existing.ID, existing.Status)
		return existing, fmt.Errorf("запрос уже существует: %w", ErrConflict)
	}

	result, err := DB.Exec(
		"INSERT INTO chat_requests (item_id, requester_id, responder_id, message) VALUES (?, ?, ?, ?)",
		itemID, requesterID, responderID, message,
	)
	if err != nil {
		// Два параллельных создания могут пройти проверку выше одновременно,
		// тогда гонку разрешает уникальный ключ
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			existing, findErr := findChatRequest(itemID, requesterID, responderID)
			if findErr != nil {
				return nil, findErr
			}
			return existing, fmt.Errorf("запрос уже существует: %w", ErrConflict)
		}
		log.Printf("❌ Ошибка создания запроса на чат: %v", err)
		return nil, err
	}

	requestID, err := result.LastInsertId()
	if err != nil {
		log.Printf("❌ Ошибка получения ID запроса: %v", err)
		return nil, err
	}

	log.Printf("✅ Создан запрос на чат ID=%d по вещи %d от пользователя %d к пользователю %d",
		requestID, itemID, requesterID, responderID)

	return &ChatRequest{
		ID:          int(requestID),
		ItemID:      itemID,
		RequesterID: requesterID,
		ResponderID: responderID,
		Message:     message,
		Status:      RequestStatusPending,
	}, nil
}

// ResolveChatRequest переводит запрос из pending в accepted или declined.
// Переход выполняется ровно один раз: повторное решение по уже
// обработанному запросу возвращает ErrConflict, а не применяется заново.
// При принятии запроса чат создается в той же транзакции, что и смена
// статуса — если вставка чата не удалась, статус тоже откатывается.
// Возвращает ID созданного чата (0 для отклоненных запросов).
func ResolveChatRequest(requestID int, action string, actorID int) (int, error) {
	if action != RequestStatusAccepted && action != RequestStatusDeclined {
		return 0, fmt.Errorf("недопустимое действие %q", action)
	}

	// Читаем запрос, чтобы отличить NotFound от Conflict
	// и проверить, что решение принимает именно адресат
	request, err := GetChatRequestByID(requestID)
	if err != nil {
		return 0, err
	}
	if request == nil {
		return 0, fmt.Errorf("запрос %d не найден: %w", requestID, ErrNotFound)
	}
	if request.ResponderID != actorID {
		return 0, fmt.Errorf("пользователь %d не является адресатом запроса %d: %w",
			actorID, requestID, ErrForbidden)
	}
	if request.Status != RequestStatusPending {
		return 0, fmt.Errorf("запрос %d уже обработан (статус %s): %w",
			requestID, request.Status, ErrConflict)
	}

	tx, err := DB.Begin()
	if err != nil {
		return 0, err
	}

	// Условное обновление: при двух параллельных решениях по одному запросу
	// только одно увидит status='pending', второе получит ноль строк
	result, err := tx.Exec(
		"UPDATE chat_requests SET status = ? WHERE id = ? AND status = ?",
		action, requestID, RequestStatusPending,
	)
	if err != nil {
		tx.Rollback()
		log.Printf("❌ Ошибка обновления статуса запроса %d: %v", requestID, err)
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	if affected == 0 {
		tx.Rollback()
		return 0, fmt.Errorf("запрос %d уже обработан параллельным решением: %w",
			requestID, ErrConflict)
	}

	var chatID int
	if action == RequestStatusAccepted {
		res, err := tx.Exec(
			"INSERT INTO chats (request_id, item_id, requester_id, responder_id) VALUES (?, ?, ?, ?)",
			requestID, request.ItemID, request.RequesterID, request.ResponderID,
		)
		if err != nil {
			tx.Rollback()
			log.Printf("❌ Ошибка создания чата для запроса %d, откатываем статус: %v", requestID, err)
			return 0, err
		}

		lastID, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return 0, err
		}
		chatID = int(lastID)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Ошибка фиксации транзакции для запроса %d: %v", requestID, err)
		return 0, err
	}

	if action == RequestStatusAccepted {
		log.Printf("✅ Запрос %d принят, создан чат ID=%d", requestID, chatID)
	} else {
		log.Printf("✅ Запрос %d отклонен", requestID)
	}

	return chatID, nil
}

// CheckChatRequest возвращает последний запрос пользователя по указанной вещи.
// Возвращает (nil, nil), если запроса нет — клиент в этом случае показывает
// форму создания запроса вместо его статуса.
func CheckChatRequest(itemID, requesterID int) (*ChatRequest, error) {
	var request ChatRequest
	var chatID sql.NullInt64

	err := DB.QueryRow(`
		SELECT r.id, r.item_id, r.requester_id, r.responder_id, r.message, r.status, r.created_at,
		       IFNULL(c.id, 0)
		FROM chat_requests r
		LEFT JOIN chats c ON c.request_id = r.id
		WHERE r.item_id = ? AND r.requester_id = ?
		ORDER BY r.created_at DESC
		LIMIT 1
	`, itemID, requesterID).Scan(
		&request.ID, &request.ItemID, &request.RequesterID, &request.ResponderID,
		&request.Message, &request.Status, &request.CreatedAt, &chatID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	request.ChatID = int(chatID.Int64)
	return &request, nil
}

// GetChatRequestByID возвращает запрос по его ID или nil, если запроса нет
func GetChatRequestByID(requestID int) (*ChatRequest, error) {
	var request ChatRequest

	err := DB.QueryRow(`
		SELECT id, item_id, requester_id, responder_id, message, status, created_at
		FROM chat_requests
		WHERE id = ?
	`, requestID).Scan(
		&request.ID, &request.ItemID, &request.RequesterID, &request.ResponderID,
		&request.Message, &request.Status, &request.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &request, nil
}

// findChatRequest ищет запрос по уникальной тройке (вещь, отправитель, получатель)
func findChatRequest(itemID, requesterID, responderID int) (*ChatRequest, error) {
	var request ChatRequest

	err := DB.QueryRow(`
		SELECT id, item_id, requester_id, responder_id, message, status, created_at
		FROM chat_requests
		WHERE item_id = ? AND requester_id = ? AND responder_id = ?
	`, itemID, requesterID, responderID).Scan(
		&request.ID, &request.ItemID, &request.RequesterID, &request.ResponderID,
		&request.Message, &request.Status, &request.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &request, nil
}
