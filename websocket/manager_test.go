// websocket/manager_test.go
package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/lostfound_chat/database"
)

func newTestClient(userID int) *Client {
	return &Client{
		UserID: userID,
		ConnID: uuid.NewString(),
		Send:   make(chan []byte, 16),
	}
}

func TestRegisterAndPublish(t *testing.T) {
	manager := NewManager(nil, nil)
	client := newTestClient(1)

	manager.register(client)
	require.True(t, manager.IsOnline(1))

	delivered := manager.PublishToUser(1, []byte(`{"type":"test"}`))
	assert.True(t, delivered)

	payload := <-client.Send
	assert.JSONEq(t, `{"type":"test"}`, string(payload))
}

func TestPublishToOfflineUserDrops(t *testing.T) {
	manager := NewManager(nil, nil)

	// Реле не очередь: событие для отключенного пользователя отбрасывается
	delivered := manager.PublishToUser(42, []byte(`{"type":"test"}`))
	assert.False(t, delivered)
}

func TestRegisterLastWriterWins(t *testing.T) {
	manager := NewManager(nil, nil)
	first := newTestClient(1)
	second := newTestClient(1)

	manager.register(first)
	manager.register(second)

	// Старое соединение вытеснено: его канал закрыт
	_, open := <-first.Send
	assert.False(t, open)

	// События уходят только новому соединению
	manager.PublishToUser(1, []byte(`{"type":"test"}`))
	select {
	case payload := <-second.Send:
		assert.JSONEq(t, `{"type":"test"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("событие не дошло до нового соединения")
	}
}

func TestStaleUnregisterIgnored(t *testing.T) {
	manager := NewManager(nil, nil)
	old := newTestClient(1)
	current := newTestClient(1)

	manager.register(old)
	manager.register(current)

	// Запоздавшее отключение старого соединения не должно снять
	// регистрацию нового
	manager.unregister(old)
	assert.True(t, manager.IsOnline(1))

	// Отключение актуального соединения снимает регистрацию
	manager.unregister(current)
	assert.False(t, manager.IsOnline(1))
}

func TestUnregisterUnknownClient(t *testing.T) {
	manager := NewManager(nil, nil)

	// Отключение незарегистрированного клиента — не ошибка
	manager.unregister(newTestClient(7))
	assert.False(t, manager.IsOnline(7))
}

func TestPublishEvictsClientWithFullBuffer(t *testing.T) {
	manager := NewManager(nil, nil)
	client := &Client{
		UserID: 1,
		ConnID: uuid.NewString(),
		Send:   make(chan []byte), // без буфера: отправка сразу блокируется
	}

	manager.register(client)

	delivered := manager.PublishToUser(1, []byte(`{"type":"test"}`))
	assert.False(t, delivered)
	assert.False(t, manager.IsOnline(1))
}

func TestNotifyMessageCreatedFrame(t *testing.T) {
	manager := NewManager(nil, nil)
	client := newTestClient(2)
	manager.register(client)

	created := time.Date(2025, 5, 17, 12, 30, 0, 0, time.UTC)
	manager.NotifyMessageCreated(2, &database.Message{
		ID:        100,
		ChatID:    77,
		SenderID:  1,
		Message:   "нашел, подходите в аудиторию 4",
		CreatedAt: created,
	})

	payload := <-client.Send
	var frame Frame
	require.NoError(t, json.Unmarshal(payload, &frame))
	assert.Equal(t, FrameMessageCreated, frame.Type)
	assert.Equal(t, 77, frame.ChatID)
	assert.Equal(t, 100, frame.ID)
	assert.Equal(t, 1, frame.SenderID)
	assert.Equal(t, "нашел, подходите в аудиторию 4", frame.Content)
}

func TestNotifyRequestStatusChangedFrame(t *testing.T) {
	manager := NewManager(nil, nil)
	client := newTestClient(1)
	manager.register(client)

	manager.NotifyRequestStatusChanged(1, 5, database.RequestStatusAccepted, 77)

	payload := <-client.Send
	var frame Frame
	require.NoError(t, json.Unmarshal(payload, &frame))
	assert.Equal(t, FrameRequestStatusChanged, frame.Type)
	assert.Equal(t, 5, frame.RequestID)
	assert.Equal(t, database.RequestStatusAccepted, frame.Status)
	assert.Equal(t, 77, frame.ChatID)
}

func TestNotifyRequestStatusChangedOffline(t *testing.T) {
	manager := NewManager(nil, nil)

	// Получатель не в сети: уведомление молча отбрасывается
	manager.NotifyRequestStatusChanged(42, 5, database.RequestStatusDeclined, 0)
	assert.False(t, manager.IsOnline(42))
}
