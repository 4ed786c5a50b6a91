// database/chat_test.go
package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseChat(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	mock.ExpectExec("UPDATE chats SET status").
		WithArgs(ChatStatusClosed, 77).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := CloseChat(77, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseChatIdempotent(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(closedChatRow())

	// Чат уже закрыт: успех без UPDATE
	err := CloseChat(77, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseChatByOutsider(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(77).
		WillReturnRows(activeChatRow())

	err := CloseChat(77, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCloseChatNotFound(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("FROM chats").
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(chatColumns))

	err := CloseChat(404, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatParticipants(t *testing.T) {
	chat := &Chat{ID: 77, RequesterID: 1, ResponderID: 2}

	assert.True(t, chat.IsParticipant(1))
	assert.True(t, chat.IsParticipant(2))
	assert.False(t, chat.IsParticipant(3))

	assert.Equal(t, 2, chat.PeerOf(1))
	assert.Equal(t, 1, chat.PeerOf(2))
}

func TestGetUserChats(t *testing.T) {
	mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery("FROM chats c").
		WithArgs(1, 1, 1).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, chatColumns...), "last_activity", "unread_count")).
			AddRow(77, 5, 42, 1, 2, ChatStatusActive, now, now, 2))

	// Последнее сообщение достается отдельным запросом и расшифровывается
	stored, err := encryptForDB("опишите примету")
	require.NoError(t, err)
	mock.ExpectQuery("FROM messages").
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(messageColumns).
			AddRow(2, 77, 2, stored, now, false))

	chats, err := GetUserChats(1)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, 2, chats[0].UnreadCount)
	require.NotNil(t, chats[0].LastMessage)
	assert.Equal(t, "опишите примету", chats[0].LastMessage.Message)
}
