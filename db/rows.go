package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one result row keyed by lower-cased column name, since PostgreSQL
// folds unquoted identifiers and SQLite does not. Values are normalized so
// both engines produce the same shapes: integers are int64, text is string,
// timestamps are UTC time.Time and booleans are bool. Accessors take the
// column name in any case.
type Row map[string]any

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (r Row) get(col string) (any, bool) {
	if v, ok := r[col]; ok {
		return v, true
	}
	v, ok := r[strings.ToLower(col)]
	return v, ok
}

// Value returns the raw normalized value of col.
func (r Row) Value(col string) any {
	v, _ := r.get(col)
	return v
}

func (r Row) Has(col string) bool {
	_, ok := r.get(col)
	return ok
}

func (r Row) Int64(col string) int64 {
	switch v := r.Value(col).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}

func (r Row) Int(col string) int { return int(r.Int64(col)) }

func (r Row) Float64(col string) float64 {
	switch v := r.Value(col).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return 0
}

func (r Row) String(col string) string {
	switch v := r.Value(col).(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// NullString returns nil for SQL NULL.
func (r Row) NullString(col string) *string {
	if r.Value(col) == nil {
		return nil
	}
	s := r.String(col)
	return &s
}

func (r Row) Bool(col string) bool {
	switch v := r.Value(col).(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

func (r Row) Time(col string) time.Time {
	switch v := r.Value(col).(type) {
	case time.Time:
		return v.UTC()
	case string:
		t, _ := parseTime(v)
		return t
	case int64:
		return time.Unix(v, 0).UTC()
	}
	return time.Time{}
}

// NullTime returns nil for SQL NULL.
func (r Row) NullTime(col string) *time.Time {
	if r.Value(col) == nil {
		return nil
	}
	t := r.Time(col)
	return &t
}

// scanRows drains rows into normalized Row values. It also returns the
// column names in select order.
func scanRows(rows *sql.Rows) ([]string, []Row, error) {
	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = strings.ToLower(col.Name())
	}
	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[names[i]] = normalizeColumn(col.DatabaseTypeName(), values[i])
		}
		out = append(out, row)
	}
	return names, out, rows.Err()
}

func normalizeColumn(dbType string, v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		v = string(x)
	case int:
		v = int64(x)
	case int32:
		v = int64(x)
	case float32:
		v = float64(x)
	case time.Time:
		return x.UTC()
	}

	switch strings.ToUpper(dbType) {
	case "BOOL", "BOOLEAN":
		switch x := v.(type) {
		case int64:
			return x != 0
		case string:
			b, _ := strconv.ParseBool(x)
			return b
		}
	case "DATE", "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		if s, ok := v.(string); ok {
			if t, ok := parseTime(s); ok {
				return t
			}
		}
	}
	return v
}
