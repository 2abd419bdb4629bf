package advisor

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest возвращается для запросов с некорректными полями.
var ErrInvalidRequest = errors.New("invalid request")

// ErrDataUnavailable возвращается, если набор данных не удалось загрузить.
var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError описывает недоступный источник данных.
// errors.Is(err, ErrDataUnavailable) истинно для любого такого значения.
type DataUnavailableError struct {
	Source string // Путь к файлу или имя хранилища
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("data unavailable: %s: %v", e.Source, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
