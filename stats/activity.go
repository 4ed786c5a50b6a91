// stats/activity.go
package stats

import (
	"database/sql"
	"log"
	"time"
)

// DailyActivity — агрегированные показатели за один день
type DailyActivity struct {
	Date             time.Time
	NewRequests      int
	AcceptedRequests int
	DeclinedRequests int
	NewMessages      int
	ClosedChats      int
}

// CollectDailyActivity собирает показатели за указанную дату и сохраняет
// их в таблицу daily_activity. Повторный запуск за ту же дату
// перезаписывает строку, поэтому сбор можно перезапускать безопасно.
func CollectDailyActivity(db *sql.DB, date time.Time) (*DailyActivity, error) {
	day := date.Format("2006-01-02")

	activity := &DailyActivity{Date: date}

	// Новые запросы и их решения считаем по дате создания запроса
	err := db.QueryRow(`
		SELECT
			COUNT(*),
			IFNULL(SUM(CASE WHEN status = 'accepted' THEN 1 ELSE 0 END), 0),
			IFNULL(SUM(CASE WHEN status = 'declined' THEN 1 ELSE 0 END), 0)
		FROM chat_requests
		WHERE DATE(created_at) = ?
	`, day).Scan(&activity.NewRequests, &activity.AcceptedRequests, &activity.DeclinedRequests)
	if err != nil {
		log.Printf("❌ Ошибка подсчета запросов за %s: %v", day, err)
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM messages WHERE DATE(created_at) = ?
	`, day).Scan(&activity.NewMessages)
	if err != nil {
		log.Printf("❌ Ошибка подсчета сообщений за %s: %v", day, err)
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FROM chats WHERE status = 'closed' AND DATE(created_at) = ?
	`, day).Scan(&activity.ClosedChats)
	if err != nil {
		log.Printf("❌ Ошибка подсчета закрытых чатов за %s: %v", day, err)
		return nil, err
	}

	_, err = db.Exec(`
		INSERT INTO daily_activity
			(activity_date, new_requests, accepted_requests, declined_requests, new_messages, closed_chats)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			new_requests = VALUES(new_requests),
			accepted_requests = VALUES(accepted_requests),
			declined_requests = VALUES(declined_requests),
			new_messages = VALUES(new_messages),
			closed_chats = VALUES(closed_chats)
	`, day, activity.NewRequests, activity.AcceptedRequests, activity.DeclinedRequests,
		activity.NewMessages, activity.ClosedChats)
	if err != nil {
		log.Printf("❌ Ошибка сохранения статистики за %s: %v", day, err)
		return nil, err
	}

	log.Printf("✅ Статистика за %s: запросов %d (принято %d, отклонено %d), сообщений %d, закрыто чатов %d",
		day, activity.NewRequests, activity.AcceptedRequests, activity.DeclinedRequests,
		activity.NewMessages, activity.ClosedChats)

	return activity, nil
}
