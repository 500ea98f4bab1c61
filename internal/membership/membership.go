// Package membership handles lists of related colonist ids stored inside a
// single column.
//
// Rows written by this service always hold a JSON array ("[2,3]"). Older
// databases hold free text such as "2, 3", "[2,3]" or "2 3"; those are read
// through Parse, so every legacy form is converted once when it is scanned.
package membership

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MalformedError reports the first token ParseStrict could not read as an id.
type MalformedError struct {
	Token    string
	Position int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed member id %q at position %d", e.Token, e.Position)
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func tokens(raw string) []string {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return r == '[' || r == ']' || unicode.IsSpace(r)
	})
	fields := strings.FieldsFunc(trimmed, isSeparator)
	for i, f := range fields {
		fields[i] = strings.Trim(f, `"'`)
	}
	return fields
}

// Parse returns the ids found in raw, in order. Tokens that are not
// non-negative integers are dropped. An empty field yields an empty slice.
func Parse(raw string) []uint64 {
	ids := make([]uint64, 0)
	for _, tok := range tokens(raw) {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseNullable is Parse for nullable columns.
func ParseNullable(raw *string) []uint64 {
	if raw == nil {
		return make([]uint64, 0)
	}
	return Parse(*raw)
}

// ParseStrict is Parse that fails on the first unreadable token.
func ParseStrict(raw string) ([]uint64, error) {
	toks := tokens(raw)
	ids := make([]uint64, 0, len(toks))
	for i, tok := range toks {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, &MalformedError{Token: tok, Position: i}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count is len(Parse(raw)).
func Count(raw string) int {
	return len(Parse(raw))
}

// Format renders ids in the delimited text form, e.g. "2, 3".
func Format(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ", ")
}

// List is the canonical in-memory and stored form of a membership field.
type List []uint64

// GormDataType keeps the column textual on every dialect.
func (List) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer.
func (l List) Value() (driver.Value, error) {
	if l == nil {
		l = List{}
	}
	b, err := json.Marshal([]uint64(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. It accepts the JSON form and all legacy text
// forms.
func (l *List) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = List{}
	case string:
		*l = List(Parse(v))
	case []byte:
		*l = List(Parse(string(v)))
	case int64:
		if v < 0 {
			*l = List{}
			return nil
		}
		*l = List{uint64(v)}
	default:
		return fmt.Errorf("membership: cannot scan %T", src)
	}
	return nil
}

// Len returns the number of members.
func (l List) Len() int {
	return len(l)
}

// Contains reports whether id is a member.
func (l List) Contains(id uint64) bool {
	for _, m := range l {
		if m == id {
			return true
		}
	}
	return false
}

// String renders the list in the delimited text form.
func (l List) String() string {
	return Format(l)
}
