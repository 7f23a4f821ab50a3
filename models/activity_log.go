package models

import "time"

// ActivityLogEntry is a human-readable, append-only log line tied to a
// submission. The workflow engine writes these but never reads them back.
type ActivityLogEntry struct {
	EntryID      int       `gorm:"primaryKey;column:entry_id" json:"entry_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	ActorID      int       `gorm:"column:actor_id" json:"actor_id"`
	Action       string    `gorm:"column:action" json:"action"`
	Description  *string   `gorm:"column:description" json:"description,omitempty"`
	IPAddress    *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table for ActivityLogEntry.
func (ActivityLogEntry) TableName() string {
	return "activity_log"
}
