// websocket/types.go
package websocket

import (
	"database/sql"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Frame — кадр обмена через WebSocket в обе стороны.
// Тип кадра определяет, какие поля заполнены.
type Frame struct {
	Type      string `json:"type"`
	ChatID    int    `json:"chatId,omitempty"`
	RequestID int    `json:"requestId,omitempty"`
	Status    string `json:"status,omitempty"`
	Content   string `json:"content,omitempty"`
	ID        int    `json:"id,omitempty"`
	SenderID  int    `json:"senderId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Типы исходящих кадров
const (
	FrameMessageCreated       = "message-created"
	FrameRequestStatusChanged = "request-status-changed"
	FrameConfirmation         = "confirmation"
	FrameError                = "error"
	FramePong                 = "pong"
)

// Клиент WebSocket: одно живое соединение одного пользователя.
// ConnID различает соединения одного и того же пользователя, чтобы
// запоздавшее отключение старого соединения не снимало регистрацию нового.
type Client struct {
	UserID  int
	ConnID  string
	Socket  *websocket.Conn
	Send    chan []byte
	Manager *Manager
}

// TokenValidator проверяет токен подключения и возвращает ID пользователя
type TokenValidator func(token string) (int, error)

// Менеджер WebSocket-соединений: реестр живых соединений по ID пользователя
type Manager struct {
	Clients    map[int]*Client
	Register   chan *Client
	Unregister chan *Client
	DB         *sql.DB

	validate TokenValidator

	// Реестр читается из горутин HTTP-обработчиков при публикации событий
	clientsMutex sync.RWMutex
}

// Конфигурация WebSocket-соединения
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Разрешаем подключения с любого источника (для разработки)
	},
}
