// database/db.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/LilVoxy/lostfound_chat/config"
)

// DB — общее подключение к базе данных, инициализируется в InitDB
var DB *sql.DB

// messageKey — ключ шифрования тел сообщений, задается в InitDB
var messageKey []byte

// InitDB инициализирует соединение с базой данных и проверяет схему
func InitDB(cfg config.DatabaseConfig, key []byte) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Printf("❌ Ошибка подключения к БД: %v", err)
		return nil, err
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Printf("❌ Ошибка проверки соединения с БД: %v", err)
		return nil, err
	}

	// Устанавливаем параметры пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Успешное подключение к базе данных")

	// Проверяем существование необходимых таблиц
	if err := createTablesIfNotExist(db); err != nil {
		log.Printf("❌ Ошибка создания таблиц: %v", err)
		return nil, err
	}

	DB = db
	messageKey = key

	return db, nil
}

// Создание необходимых таблиц, если они не существуют
func createTablesIfNotExist(db *sql.DB) error {
	// SQL для создания таблицы запросов на чат
	createChatRequestsTable := `
	CREATE TABLE IF NOT EXISTS chat_requests (
		id INT AUTO_INCREMENT PRIMARY KEY,
		item_id INT NOT NULL,
		requester_id INT NOT NULL,
		responder_id INT NOT NULL,
		message TEXT NOT NULL,
		status ENUM('pending', 'accepted', 'declined') NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_request (item_id, requester_id, responder_id),
		INDEX idx_responder (responder_id, status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы чатов
	// UNIQUE по request_id гарантирует ровно один чат на принятый запрос
	createChatsTable := `
	CREATE TABLE IF NOT EXISTS chats (
		id INT AUTO_INCREMENT PRIMARY KEY,
		request_id INT NOT NULL,
		item_id INT NOT NULL,
		requester_id INT NOT NULL,
		responder_id INT NOT NULL,
		status ENUM('active', 'closed') NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_request_chat (request_id),
		FOREIGN KEY (request_id) REFERENCES chat_requests(id),
		INDEX idx_participants (requester_id, responder_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы сообщений
	createMessagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id INT AUTO_INCREMENT PRIMARY KEY,
		chat_id INT NOT NULL,
		sender_id INT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		read_status BOOLEAN NOT NULL DEFAULT FALSE,
		FOREIGN KEY (chat_id) REFERENCES chats(id),
		INDEX idx_chat_id (chat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	// SQL для создания таблицы суточной статистики
	createDailyActivityTable := `
	CREATE TABLE IF NOT EXISTS daily_activity (
		activity_date DATE PRIMARY KEY,
		new_requests INT NOT NULL DEFAULT 0,
		accepted_requests INT NOT NULL DEFAULT 0,
		declined_requests INT NOT NULL DEFAULT 0,
		new_messages INT NOT NULL DEFAULT 0,
		closed_chats INT NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

	tables := []struct {
		name string
		ddl  string
	}{
		{"chat_requests", createChatRequestsTable},
		{"chats", createChatsTable},
		{"messages", createMessagesTable},
		{"daily_activity", createDailyActivityTable},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.ddl); err != nil {
			return fmt.Errorf("ошибка создания таблицы %s: %v", table.name, err)
		}
	}

	log.Println("✅ Структура базы данных проверена и актуализирована")
	return nil
}
