// Package models contains domain entities and persistence models for campaign generation
package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RowValueKind tags the dynamic type held by a RowValue
type RowValueKind uint8

const (
	RowValueNull RowValueKind = iota
	RowValueString
	RowValueNumber
)

// String returns the string representation of the kind
func (k RowValueKind) String() string {
	switch k {
	case RowValueString:
		return "string"
	case RowValueNumber:
		return "number"
	default:
		return "null"
	}
}

// RowValue is a single cell of a data row: a string, a number or null
type RowValue struct {
	Kind RowValueKind
	Str  string
	Num  float64
}

func StringValue(s string) RowValue {
	return RowValue{Kind: RowValueString, Str: s}
}

func NumberValue(n float64) RowValue {
	return RowValue{Kind: RowValueNumber, Num: n}
}

func NullValue() RowValue {
	return RowValue{Kind: RowValueNull}
}

// IsNull reports whether the value is null
func (v RowValue) IsNull() bool {
	return v.Kind == RowValueNull
}

// DisplayString renders the value for template substitution.
// Numbers use their shortest decimal form (99.99 -> "99.99", 100 -> "100"); null renders empty.
func (v RowValue) DisplayString() string {
	switch v.Kind {
	case RowValueString:
		return v.Str
	case RowValueNumber:
		return formatNumber(v.Num)
	default:
		return ""
	}
}

// formatNumber switches to exponent form outside [1e-6, 1e21), e.g. 1e21 -> "1e+21", 1e-7 -> "1e-7"
func formatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if abs := math.Abs(n); abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}

	s := strconv.FormatFloat(n, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// MarshalJSON implements json.Marshaler
func (v RowValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case RowValueString:
		return json.Marshal(v.Str)
	case RowValueNumber:
		return json.Marshal(v.Num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
// Booleans keep their literal text; nested objects and arrays keep their raw JSON text.
func (v *RowValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty row value")
	}

	switch trimmed[0] {
	case 'n':
		*v = NullValue()
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("invalid string row value: %w", err)
		}
		*v = StringValue(s)
		return nil
	case 't', 'f':
		*v = StringValue(string(trimmed))
		return nil
	case '{', '[':
		*v = StringValue(string(trimmed))
		return nil
	}

	n, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric row value %s: %w", trimmed, err)
	}
	*v = NumberValue(n)
	return nil
}

// RowData maps a column name to its cell value
type RowData map[string]RowValue

// Value implements the driver.Valuer interface for RowData
func (d RowData) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements the sql.Scanner interface for RowData
func (d *RowData) Scan(value any) error {
	if value == nil {
		*d = RowData{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RowData", value)
	}

	out := RowData{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

// DataRow is one row of a tabular data source. The engine only reads rows.
type DataRow struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DataSourceID string    `gorm:"size:64;not null;index:idx_data_rows_data_source_id" json:"data_source_id"`
	RowData      RowData   `gorm:"type:jsonb;not null" json:"row_data"`
	RowIndex     int       `gorm:"not null" json:"row_index"`
	CreatedAt    time.Time `gorm:"index:idx_data_rows_created_at" json:"created_at"`
}

// TableName returns the table name for the model
func (DataRow) TableName() string {
	return "data_rows"
}

// DataRowFilter represents filter criteria for data rows
type DataRowFilter struct {
	ID           *uint   `json:"id,omitempty"`
	DataSourceID *string `json:"data_source_id,omitempty"`
}
