// database/message_crypto.go
package database

import (
	"fmt"

	"github.com/LilVoxy/lostfound_chat/processor"
)

// encryptForDB готовит сообщение к сохранению: сжатие + шифрование.
// Ключ задается при инициализации БД из конфигурации.
func encryptForDB(plaintext string) (string, error) {
	if len(messageKey) == 0 {
		return "", fmt.Errorf("ключ шифрования сообщений не инициализирован")
	}
	return processor.PackForStorage(plaintext, messageKey)
}

// decryptFromDB восстанавливает исходный текст сообщения из БД
func decryptFromDB(stored string) (string, error) {
	if len(messageKey) == 0 {
		return "", fmt.Errorf("ключ шифрования сообщений не инициализирован")
	}
	return processor.UnpackFromStorage(stored, messageKey)
}
