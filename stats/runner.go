// stats/runner.go
package stats

import (
	"database/sql"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// StartScheduler запускает ежедневный сбор статистики за прошедший день.
// Возвращенный планировщик нужно остановить при завершении сервера.
func StartScheduler(db *sql.DB) *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.UTC)

	_, err := scheduler.Every(1).Day().At("03:00").Do(func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		if _, err := CollectDailyActivity(db, yesterday); err != nil {
			log.Printf("❌ Сбор суточной статистики не удался: %v", err)
		}
	})
	if err != nil {
		log.Printf("❌ Ошибка планирования сбора статистики: %v", err)
		return scheduler
	}

	scheduler.StartAsync()
	log.Println("✅ Планировщик суточной статистики запущен (каждый день в 03:00 UTC)")

	return scheduler
}
