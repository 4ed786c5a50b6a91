// processor/compress.go
package processor

import (
	"github.com/golang/snappy"
)

// compressBody сжимает тело сообщения перед шифрованием
func compressBody(data []byte) []byte {
	return snappy.Encode(nil, data)
}

// decompressBody распаковывает тело сообщения после расшифровки
func decompressBody(data []byte) ([]byte, error) {
	decompressed, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	return decompressed, nil
}
