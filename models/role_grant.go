package models

import (
	"fmt"
	"time"
)

// RolePath identifies one of the closed set of editorial roles a user can
// hold. Values are stored verbatim in the role_grants table.
type RolePath string

const (
	RoleAdmin               RolePath = "admin"
	RoleManager             RolePath = "manager"
	RoleEditor              RolePath = "editor"
	RoleSectionEditor       RolePath = "section_editor"
	RoleGuestEditor         RolePath = "guest_editor"
	RoleReviewer            RolePath = "reviewer"
	RoleAuthor              RolePath = "author"
	RoleReader              RolePath = "reader"
	RoleCopyeditor          RolePath = "copyeditor"
	RoleProofreader         RolePath = "proofreader"
	RoleLayoutEditor        RolePath = "layout-editor"
	RoleSubscriptionManager RolePath = "subscription-manager"
)

var rolePaths = map[RolePath]bool{
	RoleAdmin:               true,
	RoleManager:             true,
	RoleEditor:              true,
	RoleSectionEditor:       true,
	RoleGuestEditor:         true,
	RoleReviewer:            true,
	RoleAuthor:              true,
	RoleReader:              true,
	RoleCopyeditor:          true,
	RoleProofreader:         true,
	RoleLayoutEditor:        true,
	RoleSubscriptionManager: true,
}

// ParseRolePath validates a raw role string against the closed enumeration.
func ParseRolePath(raw string) (RolePath, error) {
	role := RolePath(raw)
	if !rolePaths[role] {
		return "", fmt.Errorf("unknown role path '%s'", raw)
	}
	return role, nil
}

// ScopeType distinguishes site-wide grants from journal-bound grants.
type ScopeType string

const (
	ScopeSite    ScopeType = "site"
	ScopeJournal ScopeType = "journal"
)

// RoleGrant is one (user, rolePath, scope) authorization fact. JournalID is
// set exactly when ScopeType is "journal". Grants are written only by the
// administrative endpoints; the access resolver treats them as read-only.
type RoleGrant struct {
	GrantID   int        `gorm:"primaryKey;column:grant_id" json:"grant_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	RolePath  RolePath   `gorm:"column:role_path" json:"role_path"`
	ScopeType ScopeType  `gorm:"column:scope_type" json:"scope_type"`
	JournalID *int       `gorm:"column:journal_id" json:"journal_id,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Journal *Journal `gorm:"foreignKey:JournalID" json:"journal,omitempty"`
}

// IsSite reports whether the grant applies site-wide.
func (g RoleGrant) IsSite() bool {
	return g.ScopeType == ScopeSite
}

// AppliesToJournal reports whether the grant is bound to the given journal.
// A site-scoped grant never matches here; the site-admin override is resolved
// one level up, in the access resolver.
func (g RoleGrant) AppliesToJournal(journalID int) bool {
	return g.ScopeType == ScopeJournal && g.JournalID != nil && *g.JournalID == journalID
}

// TableName overrides
func (RoleGrant) TableName() string {
	return "role_grants"
}
