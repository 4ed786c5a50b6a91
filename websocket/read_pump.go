// websocket/read_pump.go
package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// readPump обрабатывает чтение кадров от клиента
func (c *Client) readPump() {
	defer func() {
		// Обработка паники при закрытии канала
		if r := recover(); r != nil {
			log.Printf("⚠️ Паника при чтении сообщений клиента %d: %v", c.UserID, r)
		}

		// Отправляем сигнал отключения: менеджер сам решит, актуальна ли
		// еще эта регистрация (соединение могло быть вытеснено новым)
		c.Manager.Unregister <- c
		c.Socket.Close()

		log.Printf("Завершение readPump для клиента %d (соединение %s)", c.UserID, c.ConnID)
	}()

	// Устанавливаем параметры подключения
	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ Ошибка чтения от клиента %d: %v", c.UserID, err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Println("❌ Ошибка декодирования кадра:", err)
			continue
		}

		switch frame.Type {
		case "ping":
			pong := Frame{Type: FramePong}
			if pongData, err := json.Marshal(pong); err == nil {
				c.Send <- pongData
			}

		case "message":
			// Отправка сообщения через WebSocket: тот же путь сохранения,
			// что и у HTTP-обработчика
			c.Manager.HandleInboundMessage(c, frame)

		default:
			log.Printf("⚠️ Неизвестный тип кадра %q от клиента %d", frame.Type, c.UserID)
		}
	}
}
