package db

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrMissingParam     = errors.New("missing query parameter")
	ErrUnusedParam      = errors.New("unused query parameter")
	ErrUnsupportedParam = errors.New("unsupported parameter value")
	ErrPlaceholder      = errors.New("malformed placeholder")
)

// sqliteTimeLayout is how timestamps are written to and compared in the
// embedded engine. Values are always stored in UTC.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Kind is the type tag a bound value carries.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindText
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Params maps placeholder names (without the leading '@') to values.
type Params map[string]any

// Bound is a statement ready for an engine: the template with whitespace
// normalized plus the values, already converted for that engine.
type Bound struct {
	SQL   string
	Names []string
	Args  map[string]any
	Kinds map[string]Kind
}

// Vars returns the arguments in the form gorm accepts for named statements.
func (b Bound) Vars() []any {
	if len(b.Args) == 0 {
		return nil
	}
	return []any{b.Args}
}

// Bind checks query against params and converts every value for engine.
// Placeholders are written as @name. Every placeholder needs a value and
// every value needs a placeholder. Text inside single quotes is left alone.
func Bind(engine Engine, query string, params Params) (Bound, error) {
	sqlText, names, err := scanPlaceholders(query)
	if err != nil {
		return Bound{}, err
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
		if _, ok := params[n]; !ok {
			return Bound{}, fmt.Errorf("%w: @%s", ErrMissingParam, n)
		}
	}
	var unused []string
	for n := range params {
		if !seen[n] {
			unused = append(unused, n)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return Bound{}, fmt.Errorf("%w: %s", ErrUnusedParam, strings.Join(unused, ", "))
	}

	b := Bound{
		SQL:   sqlText,
		Names: names,
		Args:  make(map[string]any, len(params)),
		Kinds: make(map[string]Kind, len(params)),
	}
	for n, v := range params {
		kind, value, err := normalizeValue(v)
		if err != nil {
			return Bound{}, fmt.Errorf("@%s: %w", n, err)
		}
		b.Kinds[n] = kind
		b.Args[n] = engineValue(engine, kind, value)
	}
	return b, nil
}

// scanPlaceholders collects distinct placeholder names in order of first use
// and rewrites tabs outside literals to spaces so gorm's named parser sees a
// terminator after every name.
func scanPlaceholders(query string) (string, []string, error) {
	var (
		out    strings.Builder
		names  []string
		seen   = map[string]bool{}
		quoted bool
	)
	out.Grow(len(query))

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			quoted = !quoted
			out.WriteByte(c)
		case quoted:
			out.WriteByte(c)
		case c == '\t':
			out.WriteByte(' ')
		case c == '?':
			return "", nil, fmt.Errorf("%w: positional '?' at offset %d", ErrPlaceholder, i)
		case c == '@':
			j := i + 1
			for j < len(query) && isNameByte(query[j], j == i+1) {
				j++
			}
			if j == i+1 {
				return "", nil, fmt.Errorf("%w: empty name at offset %d", ErrPlaceholder, i)
			}
			if j < len(query) && !isTerminator(query[j]) {
				return "", nil, fmt.Errorf("%w: @%s followed by %q", ErrPlaceholder, query[i+1:j], query[j])
			}
			name := query[i+1 : j]
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			out.WriteString(query[i:j])
			i = j - 1
		default:
			out.WriteByte(c)
		}
	}
	if quoted {
		return "", nil, fmt.Errorf("%w: unterminated string literal", ErrPlaceholder)
	}
	return out.String(), names, nil
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// isTerminator lists the bytes gorm accepts after a named placeholder. Tabs
// are rewritten to spaces before this check.
func isTerminator(c byte) bool {
	switch c {
	case ' ', '\t', ',', ')', ';', '\n', '\r', '\'', '"', '`':
		return true
	}
	return false
}

func normalizeValue(v any) (Kind, any, error) {
	switch x := v.(type) {
	case nil:
		return KindNull, nil, nil
	case int:
		return KindInt, int64(x), nil
	case int8:
		return KindInt, int64(x), nil
	case int16:
		return KindInt, int64(x), nil
	case int32:
		return KindInt, int64(x), nil
	case int64:
		return KindInt, x, nil
	case uint:
		return KindInt, int64(x), nil
	case uint8:
		return KindInt, int64(x), nil
	case uint16:
		return KindInt, int64(x), nil
	case uint32:
		return KindInt, int64(x), nil
	case float32:
		return KindFloat, float64(x), nil
	case float64:
		return KindFloat, x, nil
	case bool:
		return KindBool, x, nil
	case string:
		return KindText, x, nil
	case time.Time:
		return KindTime, x.UTC(), nil
	case *string:
		if x == nil {
			return KindNull, nil, nil
		}
		return KindText, *x, nil
	case *int64:
		if x == nil {
			return KindNull, nil, nil
		}
		return KindInt, *x, nil
	case *time.Time:
		if x == nil {
			return KindNull, nil, nil
		}
		return KindTime, x.UTC(), nil
	}
	return KindNull, nil, fmt.Errorf("%w: %T", ErrUnsupportedParam, v)
}

func engineValue(engine Engine, kind Kind, v any) any {
	if !engine.Embedded() {
		return v
	}
	switch kind {
	case KindBool:
		if v.(bool) {
			return int64(1)
		}
		return int64(0)
	case KindTime:
		return v.(time.Time).Format(sqliteTimeLayout)
	}
	return v
}

// FormatTime renders t the way the embedded engine stores timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}
