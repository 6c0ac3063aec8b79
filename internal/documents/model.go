package documents

import "time"

// Status is the lifecycle state of a document.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Valid reports whether s is a known document status.
func (s Status) Valid() bool {
	switch s {
	case StatusUploaded, StatusProcessing, StatusReady, StatusError:
		return true
	}
	return false
}

// Document represents an uploaded source file owned by a user. FilePath is
// the object-store key and is immutable once set.
type Document struct {
	ID           string
	UserID       string
	Title        string
	FilePath     string
	Status       Status
	SizeBytes    int64
	PageCount    *int
	ErrorMessage *string
	CreatedAt    time.Time
}
