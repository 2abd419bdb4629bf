package classifier

import (
	"encoding/json"
	"strings"
)

// Encoder отображает категорию в целочисленный индекс в порядке первого появления.
// Таблица строится один раз при обучении и сохраняется вместе с моделью.
type Encoder struct {
	categories []string
	index      map[string]int
}

// NewEncoder строит таблицу категорий по обучающим значениям.
func NewEncoder(values []string) *Encoder {
	e := &Encoder{index: make(map[string]int)}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ok := e.index[v]; ok {
			continue
		}
		e.index[v] = len(e.categories)
		e.categories = append(e.categories, v)
	}
	return e
}

// Encode возвращает индекс категории или UnknownCategoryError.
func (e *Encoder) Encode(value string) (int, error) {
	i, ok := e.index[strings.TrimSpace(value)]
	if !ok {
		return -1, &UnknownCategoryError{Category: value, Known: e.Categories()}
	}
	return i, nil
}

// Categories возвращает категории в порядке индексов.
func (e *Encoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Len возвращает число категорий.
func (e *Encoder) Len() int {
	return len(e.categories)
}

func (e *Encoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.categories)
}

func (e *Encoder) UnmarshalJSON(data []byte) error {
	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return err
	}
	*e = *NewEncoder(categories)
	return nil
}
