// websocket/write_pump.go
package websocket

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// writePump отвечает за отправку кадров клиенту
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		// Обработка паники при закрытии канала
		if r := recover(); r != nil {
			log.Printf("⚠️ Паника при отправке сообщений клиенту %d: %v", c.UserID, r)
		}

		ticker.Stop()
		c.Socket.Close()

		log.Printf("Завершение writePump для клиента %d (соединение %s)", c.UserID, c.ConnID)
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрыт менеджером
				c.Socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Каждый кадр отправляется отдельным WriteMessage,
			// чтобы клиент мог разбирать их как самостоятельные JSON
			if err := c.Socket.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

			// Досылаем накопившиеся кадры
			n := len(c.Send)
			for i := 0; i < n; i++ {
				payload := <-c.Send
				if err := c.Socket.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		case <-ticker.C:
			c.Socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
