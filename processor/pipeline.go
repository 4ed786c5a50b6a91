// processor/pipeline.go
package processor

import (
	"encoding/base64"
)

// PackForStorage объединяет два этапа подготовки сообщения к сохранению в БД:
// 1. Сжатие исходного текста с использованием Snappy (compress.go)
// 2. Шифрование сжатого текста алгоритмом AES-GCM (crypto.go)
// Результат кодируется в base64 для хранения в текстовой колонке.
func PackForStorage(plaintext string, key []byte) (string, error) {
	compressed := compressBody([]byte(plaintext))

	encrypted, err := encryptBody(compressed, key)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// UnpackFromStorage выполняет обратный процесс для сообщения из БД:
// 1. Декодирует base64,
// 2. Расшифровывает AES-GCM,
// 3. Распаковывает Snappy.
// Возвращается исходный текст сообщения.
func UnpackFromStorage(stored string, key []byte) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}

	compressed, err := decryptBody(ciphertext, key)
	if err != nil {
		return "", err
	}

	plaintext, err := decompressBody(compressed)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
