package models

import "github.com/pkg/errors"

// Ошибки операций согласования. Контроллеры сопоставляют их
// с HTTP статусами через errors.Is.
var (
	// ErrUnauthorized - роль или подразделение не соответствуют этапу
	ErrUnauthorized = errors.New("операция недоступна для текущей роли")
	// ErrNotFoundOrWrongStage - заявка не найдена или не на ожидаемом этапе.
	// Случаи намеренно не различаются, чтобы не раскрывать существование заявки.
	ErrNotFoundOrWrongStage = errors.New("заявка не найдена или не ожидает вашего решения")
	// ErrValidationFailed - некорректные данные решения
	ErrValidationFailed = errors.New("некорректные данные решения")
	// ErrConcurrencyConflict - конфликт одновременного изменения, запрос можно безопасно повторить
	ErrConcurrencyConflict = errors.New("конфликт одновременного изменения, повторите запрос")
)

// IsBusinessErr - ошибка бизнес-логики, ожидаемая и не требующая журнала ошибок
func IsBusinessErr(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrNotFoundOrWrongStage) ||
		errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrConcurrencyConflict)
}
