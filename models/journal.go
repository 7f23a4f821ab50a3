package models

import "time"

// Journal is the owning scope for submissions, review rounds and the
// editorial records hanging off them. Journal-scoped role grants reference it.
type Journal struct {
	JournalID   int        `gorm:"primaryKey;column:journal_id" json:"journal_id"`
	JournalPath string     `gorm:"column:journal_path;unique" json:"journal_path"`
	Title       string     `gorm:"column:title" json:"title"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	IsEnabled   bool       `gorm:"column:is_enabled" json:"is_enabled"`
	ContactName *string    `gorm:"column:contact_name" json:"contact_name,omitempty"`
	ContactMail *string    `gorm:"column:contact_email" json:"contact_email,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (Journal) TableName() string {
	return "journals"
}
