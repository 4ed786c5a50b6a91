// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/lostfound_chat/auth"
	"github.com/LilVoxy/lostfound_chat/config"
	"github.com/LilVoxy/lostfound_chat/database"
	"github.com/LilVoxy/lostfound_chat/routes"
	"github.com/LilVoxy/lostfound_chat/stats"
	"github.com/LilVoxy/lostfound_chat/websocket"
)

func main() {
	fmt.Println("Запуск сервера...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация базы данных
	db, err := database.InitDB(cfg.Database, cfg.MessageKey)
	if err != nil {
		log.Fatalf("❌ Не удалось инициализировать базу данных: %v", err)
	}
	defer db.Close()

	// Менеджер токенов
	tokens := auth.NewTokenManager(cfg.JWT)

	// Создаем менеджер WebSocket-соединений
	wsManager := websocket.NewManager(db, tokens.ValidateAccess)
	go wsManager.Run()

	// Запускаем планировщик суточной статистики
	scheduler := stats.StartScheduler(db)

	// Создаем маршрутизатор и регистрируем обработчики
	router := mux.NewRouter()
	routes.SetupRoutes(router, wsManager, tokens)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Ожидаем сигнал завершения
	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	// Останавливаем планировщик статистики
	scheduler.Stop()

	// Закрываем соединение с базой данных
	if err := db.Close(); err != nil {
		log.Printf("❌ Ошибка закрытия соединения с БД: %v", err)
	} else {
		log.Println("✅ Соединение с БД закрыто")
	}

	log.Println("👋 Сервер остановлен")
}
