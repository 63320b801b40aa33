package cancellations

type Status string

const (
	StatusProcessed Status = "PROCESSED"
	StatusRejected  Status = "REJECTED"
)

// IsValid checks if the cancellation status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessed, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsRefunded checks if the cancellation produced a refund
func (s Status) IsRefunded() bool {
	return s == StatusProcessed
}
