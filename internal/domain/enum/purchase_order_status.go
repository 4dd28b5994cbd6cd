package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order.
// RECEIVED and CANCELLED are terminal.
type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "DRAFT"
	POStatusPending   PurchaseOrderStatus = "PENDING"
	POStatusOrdered   PurchaseOrderStatus = "ORDERED"
	POStatusReceived  PurchaseOrderStatus = "RECEIVED"
	POStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case POStatusDraft, POStatusPending, POStatusOrdered, POStatusReceived, POStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == POStatusReceived || s == POStatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
// Forward progression is DRAFT → PENDING → ORDERED → RECEIVED; CANCELLED is
// reachable from any non-terminal state.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	if s.IsTerminal() || !next.IsValid() || next == s {
		return false
	}
	if next == POStatusCancelled {
		return true
	}
	order := map[PurchaseOrderStatus]int{
		POStatusDraft:    0,
		POStatusPending:  1,
		POStatusOrdered:  2,
		POStatusReceived: 3,
	}
	from, ok1 := order[s]
	to, ok2 := order[next]
	return ok1 && ok2 && to > from
}

func (s PurchaseOrderStatus) String() string {
	return string(s)
}

func (s PurchaseOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *PurchaseOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = PurchaseOrderStatus(str)
	return nil
}

func (s PurchaseOrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *PurchaseOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = POStatusDraft
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = PurchaseOrderStatus(v)
	case []byte:
		*s = PurchaseOrderStatus(string(v))
	}
	return nil
}
