package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// MovementType classifies a stock movement. The type encodes the direction of
// the quantity change: IN and RET increase stock, OUT decreases it, ADJ
// carries a signed manual correction.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJ"
	MovementReturn     MovementType = "RET"
)

// Direction returns +1 for types that increase stock and -1 for OUT.
// ADJ returns +1: adjustment deltas are already signed by the caller.
func (t MovementType) Direction() int {
	if t == MovementOut {
		return -1
	}
	return 1
}

// IsValid reports whether t is one of the known movement types.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

func (t MovementType) String() string {
	return string(t)
}

func (t MovementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *MovementType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = MovementType(str)
	return nil
}

func (t MovementType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MovementType) Scan(value interface{}) error {
	if value == nil {
		*t = MovementAdjustment
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = MovementType(v)
	case []byte:
		*t = MovementType(string(v))
	}
	return nil
}
