// Package dataset читает табличные источники данных (CSV, XLSX) и адресует ячейки по имени колонки.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// MissingColumnError сообщает об отсутствии обязательной колонки в заголовке таблицы.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing", e.Column)
}

// Table представляет таблицу с заголовком. Строки могут быть короче заголовка.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable создает таблицу из заголовка и строк.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		key := normalize(h)
		if _, ok := t.index[key]; !ok {
			t.index[key] = i
		}
	}
	return t
}

// Column возвращает индекс колонки по имени или по одному из синонимов.
// Имена сравниваются без учета регистра и пробелов по краям.
func (t *Table) Column(names ...string) (int, error) {
	for _, name := range names {
		if i, ok := t.index[normalize(name)]; ok {
			return i, nil
		}
	}
	if len(names) == 0 {
		return -1, &MissingColumnError{}
	}
	return -1, &MissingColumnError{Column: names[0]}
}

// Len возвращает количество строк данных.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell возвращает значение ячейки без пробелов по краям; пустую строку для отсутствующих ячеек.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Load читает таблицу из файла; формат определяется по расширению (.csv, .xlsx).
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadCSV читает CSV; первая строка считается заголовком.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rec)
	}

	return NewTable(header, rows), nil
}

// ReadXLSX читает первый лист книги Excel; первая строка считается заголовком.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty xlsx: no header row")
	}

	return NewTable(rows[0], rows[1:]), nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}
