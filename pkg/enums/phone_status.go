package enums

import "fmt"

// PhoneStatus tracks where a unit sits in its purchase-to-sale lifecycle.
type PhoneStatus string

const (
	PhoneStatusInStock  PhoneStatus = "in_stock"
	PhoneStatusSold     PhoneStatus = "sold"
	PhoneStatusDamaged  PhoneStatus = "damaged"
	PhoneStatusReturned PhoneStatus = "returned"
)

var validPhoneStatuses = []PhoneStatus{
	PhoneStatusInStock,
	PhoneStatusSold,
	PhoneStatusDamaged,
	PhoneStatusReturned,
}

// String implements fmt.Stringer.
func (s PhoneStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PhoneStatus.
func (s PhoneStatus) IsValid() bool {
	for _, candidate := range validPhoneStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParsePhoneStatus converts raw input into a PhoneStatus.
func ParsePhoneStatus(value string) (PhoneStatus, error) {
	for _, candidate := range validPhoneStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid phone status %q", value)
}
