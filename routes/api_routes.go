// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/lostfound_chat/auth"
	"github.com/LilVoxy/lostfound_chat/middleware"
	"github.com/LilVoxy/lostfound_chat/websocket"
)

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, wsManager *websocket.Manager, tokens *auth.TokenManager) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)

	// WebSocket соединения (токен проверяется внутри обработчика)
	router.HandleFunc("/ws/{userId}", wsManager.HandleConnections)

	// Обновление токенов доступно без аутентификации
	router.HandleFunc("/api/auth/refresh", RefreshTokenHandler(tokens)).Methods("POST", "OPTIONS")

	// Все остальные API-маршруты требуют access-токен
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.TokenAuth(tokens))

	// Запросы на чат
	api.HandleFunc("/requests", CreateRequestHandler(wsManager)).Methods("POST", "OPTIONS")
	api.HandleFunc("/requests/{requestId}/resolve", ResolveRequestHandler(wsManager)).Methods("POST", "OPTIONS")
	api.HandleFunc("/requests/check", CheckRequestHandler()).Methods("GET", "OPTIONS")

	// Чаты
	api.HandleFunc("/chats", GetChatsHandler()).Methods("GET", "OPTIONS")
	api.HandleFunc("/chats/{chatId}/close", CloseChatHandler()).Methods("POST", "OPTIONS")

	// Сообщения
	api.HandleFunc("/chats/{chatId}/messages", GetMessagesHandler()).Methods("GET", "OPTIONS")
	api.HandleFunc("/chats/{chatId}/messages", SendMessageHandler(wsManager)).Methods("POST", "OPTIONS")
	api.HandleFunc("/messages/unread", UnreadCountHandler()).Methods("GET", "OPTIONS")

	// Статические файлы
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("public")))
}
