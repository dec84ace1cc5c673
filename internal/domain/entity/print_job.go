package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PrintChannel names the renderer a receipt went through.
type PrintChannel string

const (
	PrintChannelThermal PrintChannel = "thermal"
	PrintChannelA4      PrintChannel = "a4"
	PrintChannelPreview PrintChannel = "preview"
	PrintChannelTest    PrintChannel = "test"
)

// PrintJobStatus is the outcome of one print attempt.
type PrintJobStatus string

const (
	PrintJobPrinted PrintJobStatus = "printed"
	PrintJobFailed  PrintJobStatus = "failed"
)

// PrintJob is one journaled print attempt.
type PrintJob struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      int64          `gorm:"index" json:"order_id"`
	OrderNumber  string         `gorm:"size:64" json:"order_number"`
	Channel      PrintChannel   `gorm:"size:16;not null;index" json:"channel"`
	Status       PrintJobStatus `gorm:"size:16;not null" json:"status"`
	Error        string         `gorm:"type:text" json:"error,omitempty"`
	BytesWritten int            `json:"bytes_written"`
	CashierID    int64          `gorm:"index" json:"cashier_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new print job
func (j *PrintJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PrintJob model
func (PrintJob) TableName() string {
	return "print_jobs"
}
