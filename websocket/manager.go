// websocket/manager.go
package websocket

import (
	"database/sql"
	"log"
)

// NewManager создает новый менеджер WebSocket-соединений
func NewManager(db *sql.DB, validate TokenValidator) *Manager {
	return &Manager{
		Clients:    make(map[int]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		DB:         db,
		validate:   validate,
	}
}

// Run запускает цикл обработки регистраций и отключений
func (manager *Manager) Run() {
	for {
		select {
		case client := <-manager.Register:
			manager.register(client)

		case client := <-manager.Unregister:
			manager.unregister(client)
		}
	}
}

// register сохраняет соединение в реестре. Для каждого пользователя
// хранится не более одного соединения: новое вытесняет старое.
func (manager *Manager) register(client *Client) {
	manager.clientsMutex.Lock()

	if existing, ok := manager.Clients[client.UserID]; ok {
		// Пользователь уже подключен: закрываем старое соединение
		log.Printf("⚠️ Пользователь %d уже подключен (соединение %s), заменяем на %s",
			client.UserID, existing.ConnID, client.ConnID)
		delete(manager.Clients, client.UserID)
		close(existing.Send)
		if existing.Socket != nil {
			existing.Socket.Close()
		}
	}

	manager.Clients[client.UserID] = client
	manager.clientsMutex.Unlock()

	log.Printf("👤 Пользователь %d подключился (соединение %s)", client.UserID, client.ConnID)
}

// unregister снимает регистрацию соединения. Запись удаляется только если
// в реестре все еще хранится это же соединение: запоздавшее отключение
// старого соединения не должно стирать регистрацию нового.
func (manager *Manager) unregister(client *Client) {
	manager.clientsMutex.Lock()
	defer manager.clientsMutex.Unlock()

	current, ok := manager.Clients[client.UserID]
	if !ok || current.ConnID != client.ConnID {
		log.Printf("ℹ️ Отключение устаревшего соединения %s пользователя %d проигнорировано",
			client.ConnID, client.UserID)
		return
	}

	delete(manager.Clients, client.UserID)
	close(client.Send)
	log.Printf("👤 Пользователь %d отключился (соединение %s)", client.UserID, client.ConnID)
}

// PublishToUser доставляет событие пользователю, если он сейчас подключен.
// Реле не является очередью: событие для отключенного пользователя просто
// отбрасывается, источником истины остаются таблицы БД.
// Возвращает true, если событие передано в буфер соединения.
func (manager *Manager) PublishToUser(userID int, payload []byte) bool {
	manager.clientsMutex.Lock()
	defer manager.clientsMutex.Unlock()

	client, ok := manager.Clients[userID]
	if !ok {
		return false
	}

	select {
	case client.Send <- payload:
		return true
	default:
		// Буфер соединения переполнен: считаем клиента мертвым
		log.Printf("❌ Буфер соединения пользователя %d переполнен, отключаем", userID)
		delete(manager.Clients, userID)
		close(client.Send)
		return false
	}
}

// IsOnline сообщает, есть ли у пользователя живое соединение
func (manager *Manager) IsOnline(userID int) bool {
	manager.clientsMutex.RLock()
	defer manager.clientsMutex.RUnlock()

	_, ok := manager.Clients[userID]
	return ok
}
