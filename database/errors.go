// database/errors.go
package database

import (
	"errors"
)

// Ошибки бизнес-логики, которые обработчики транслируют в HTTP-статусы.
// Все остальные ошибки считаются внутренними.
var (
	// ErrNotFound — запрошенная сущность не существует
	ErrNotFound = errors.New("запись не найдена")

	// ErrForbidden — пользователь не является участником чата или адресатом запроса
	ErrForbidden = errors.New("доступ запрещен")

	// ErrConflict — нарушено правило жизненного цикла: дубликат запроса,
	// повторное решение по запросу или отправка в закрытый чат
	ErrConflict = errors.New("конфликт состояния")
)
