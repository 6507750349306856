package contracts

import (
	"database/sql"
	"encoding/json"
	"strconv"
)

var emptyString = []byte(`""`)

// Int is a nullable integer column. NULL is rendered as "".
type Int struct {
	sql.NullInt64
}

// NewInt returns a valid Int.
func NewInt(i int64) Int {
	return Int{sql.NullInt64{Int64: i, Valid: true}}
}

// MarshalJSON implements the json.Marshaler interface.
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return emptyString, nil
	}

	return strconv.AppendInt(nil, i.Int64, 10), nil
}

// Decimal is a nullable DECIMAL column, kept as the database's exact text.
// NULL is rendered as "". Numeric text is rendered as a JSON number with its digits unchanged,
// anything else as a JSON string.
type Decimal struct {
	sql.NullString
}

// NewDecimal returns a valid Decimal.
func NewDecimal(s string) Decimal {
	return Decimal{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON implements the json.Marshaler interface.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return emptyString, nil
	}

	if isNumber(d.String) {
		return []byte(d.String), nil
	}

	return json.Marshal(d.String)
}

// Text is a nullable text column. NULL is rendered as "".
type Text struct {
	sql.NullString
}

// NewText returns a valid Text.
func NewText(s string) Text {
	return Text{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON implements the json.Marshaler interface.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return emptyString, nil
	}

	return json.Marshal(t.String)
}

// isNumber reports whether s is a JSON number literal.
func isNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}

	return json.Valid([]byte(s))
}
