package classifier

import (
	"fmt"
	"strings"
)

// TrainingError сообщает о пустом или некорректном обучающем наборе.
type TrainingError struct {
	Reason string
	Err    error
}

func (e *TrainingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("training failed: %s: %v", e.Reason, e.Err)
	}
	return "training failed: " + e.Reason
}

func (e *TrainingError) Unwrap() error {
	return e.Err
}

// UnknownCategoryError возвращается для типа почвы, не встречавшегося при обучении.
type UnknownCategoryError struct {
	Category string
	Known    []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown soil type %q (known: %s)", e.Category, strings.Join(e.Known, ", "))
}
