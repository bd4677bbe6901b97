package model

import "time"

// FileUpload records a file that was stored in object storage.
// It is written after a successful upload and never modified.
type FileUpload struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:varchar(255);not null;index" json:"session_id"`
	FileName  string    `gorm:"not null" json:"file_name"`
	FileType  string    `gorm:"type:varchar(255)" json:"file_type"`
	FileURL   string    `gorm:"type:text" json:"file_url"`
	StorageID string    `gorm:"type:varchar(500)" json:"storage_id"` // object key in the bucket
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for FileUpload
func (FileUpload) TableName() string {
	return "file_uploads"
}
