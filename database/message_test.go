// database/message_test.go
package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chatColumns = []string{
	"id", "request_id", "item_id", "requester_id", "responder_id", "status", "created_at",
}

var messageColumns = []string{
	"id", "chat_id", "sender_id", "message", "created_at", "read_status",
}

func activeChatRow() *sqlmock.Rows {
	return sqlmock.NewRows(chatColumns).
		AddRow(77, 5, 42, 1, 2, ChatStatusActive, time.Now())
}

func closedChatRow() *sqlmock.Rows {
	return sqlmock.NewRows(chatColumns).
		AddRow(77, 5, 42, 1, 2, ChatStatusClosed, time.Now())
}

func TestSaveChatMessage(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	// Тело сообщения шифруется, поэтому значение аргумента неизвестно заранее
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(77, 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(100, 1))

	msg, err := SaveChatMessage(77, 1, "нашел, подходите в аудиторию 4")
	require.NoError(t, err)
	assert.Equal(t, 100, msg.ID)
	assert.Equal(t, 77, msg.ChatID)
	assert.Equal(t, "нашел, подходите в аудиторию 4", msg.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveChatMessageToClosedChat(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(closedChatRow())

	// Вставки быть не должно: ExpectationsWereMet это проверит
	_, err := SaveChatMessage(77, 1, "привет")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveChatMessageByOutsider(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	_, err := SaveChatMessage(77, 99, "привет")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSaveChatMessageUnknownChat(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(chatColumns))

	_, err := SaveChatMessage(404, 1, "привет")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveChatMessageEmptyBody(t *testing.T) {
	newMockDB(t)

	_, err := SaveChatMessage(77, 1, "")
	assert.Error(t, err)
}

func TestGetChatMessages(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	// В БД лежат зашифрованные тела
	first, err := encryptForDB("это мое?")
	require.NoError(t, err)
	second, err := encryptForDB("опишите примету")
	require.NoError(t, err)

	mock.ExpectQuery("FROM messages").
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(messageColumns).
			AddRow(1, 77, 1, first, time.Now().Add(-time.Minute), true).
			AddRow(2, 77, 2, second, time.Now(), false))

	// Чужие сообщения помечаются прочитанными
	mock.ExpectExec("UPDATE messages").
		WithArgs(77, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	messages, err := GetChatMessages(77, 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "это мое?", messages[0].Message)
	assert.Equal(t, "опишите примету", messages[1].Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatMessagesByOutsider(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	_, err := GetChatMessages(77, 99)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChatMessagesEmptyChatSkipsMarkRead(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	mock.ExpectQuery("FROM messages").
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(messageColumns))

	messages, err := GetChatMessages(77, 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
	// UPDATE не ожидался и не должен был выполниться
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnreadTotal(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(1, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := GetUnreadTotal(1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
