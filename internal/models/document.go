package models

import "gorm.io/gorm"

// DocumentScan status constants
const (
	ScanStatusProcessing = "processing"
	ScanStatusDone       = "done"
	ScanStatusFailed     = "failed"
	ScanStatusTimeout    = "timeout"
	ScanStatusCancelled  = "cancelled"
)

// DocumentScan is one OCR pass over an uploaded ID document. Extraction runs
// asynchronously; the form polls for the result and merges fields it hasn't
// been edited into yet.
type DocumentScan struct {
	gorm.Model
	ScanID     string  `json:"scanId" gorm:"uniqueIndex;not null"`
	UploadedBy uint    `json:"uploadedBy" gorm:"not null"`
	ImageKey   string  `json:"imageKey" gorm:"not null"` // storage key of the uploaded image
	Status     string  `json:"status" gorm:"not null;default:'processing'"`
	Confidence float64 `json:"confidence"`
	Fields     string  `json:"fields" gorm:"type:text"` // extracted fields, JSON-encoded
	Error      string  `json:"error,omitempty"`
}

// TableName specifies the table name
func (DocumentScan) TableName() string {
	return "document_scans"
}
