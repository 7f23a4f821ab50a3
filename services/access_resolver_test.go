package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"journal-management-api/models"
)

// fakeGrantProvider is the in-memory RoleGrantProvider used across the
// service tests.
type fakeGrantProvider struct {
	users  map[int]bool
	grants map[int][]models.RoleGrant
}

func newFakeGrantProvider() *fakeGrantProvider {
	return &fakeGrantProvider{
		users:  make(map[int]bool),
		grants: make(map[int][]models.RoleGrant),
	}
}

func (f *fakeGrantProvider) addUser(userID int) {
	f.users[userID] = true
}

func (f *fakeGrantProvider) addSiteGrant(userID int, role models.RolePath) {
	f.users[userID] = true
	f.grants[userID] = append(f.grants[userID], models.RoleGrant{
		UserID:    userID,
		RolePath:  role,
		ScopeType: models.ScopeSite,
	})
}

func (f *fakeGrantProvider) addJournalGrant(userID, journalID int, role models.RolePath) {
	f.users[userID] = true
	journal := journalID
	f.grants[userID] = append(f.grants[userID], models.RoleGrant{
		UserID:    userID,
		RolePath:  role,
		ScopeType: models.ScopeJournal,
		JournalID: &journal,
	})
}

func (f *fakeGrantProvider) ResolveActor(ctx context.Context, userID int) error {
	if !f.users[userID] {
		return fmt.Errorf("user %d: %w", userID, ErrUnauthorized)
	}
	return nil
}

func (f *fakeGrantProvider) ListRoleGrants(ctx context.Context, userID int) ([]models.RoleGrant, error) {
	return f.grants[userID], nil
}

func TestHasSiteRoleIgnoresJournalGrants(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addJournalGrant(1, 5, models.RoleAdmin)
	resolver := NewAccessResolver(provider)

	ok, err := resolver.HasSiteRole(context.Background(), 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("journal-scoped admin grant must not satisfy a site-role check")
	}

	provider.addSiteGrant(1, models.RoleAdmin)
	ok, err = resolver.HasSiteRole(context.Background(), 1, models.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("site-scoped admin grant must satisfy the site-role check")
	}
}

func TestHasJournalRoleScopeAndOrSemantics(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addJournalGrant(2, 7, models.RoleEditor)
	provider.addSiteGrant(3, models.RoleEditor)
	resolver := NewAccessResolver(provider)

	ctx := context.Background()
	wanted := []models.RolePath{models.RoleManager, models.RoleEditor}

	ok, err := resolver.HasJournalRole(ctx, 2, 7, wanted)
	if err != nil || !ok {
		t.Fatalf("one matching role in the set must suffice: ok=%v err=%v", ok, err)
	}

	ok, _ = resolver.HasJournalRole(ctx, 2, 8, wanted)
	if ok {
		t.Fatal("grant for journal 7 must not match journal 8")
	}

	ok, _ = resolver.HasJournalRole(ctx, 3, 7, wanted)
	if ok {
		t.Fatal("site-scoped grant must not satisfy a journal-role check directly")
	}

	ok, _ = resolver.HasJournalRole(ctx, 2, 7, []models.RolePath{models.RoleManager})
	if ok {
		t.Fatal("editor grant must not satisfy a manager-only requirement")
	}
}

func TestRequireSiteRoleDistinguishesFailureKinds(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addUser(4)
	resolver := NewAccessResolver(provider)
	ctx := context.Background()

	err := resolver.RequireSiteRole(ctx, 99, models.RoleAdmin)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown user: got %v want ErrUnauthorized", err)
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("unauthorized must not also match forbidden")
	}

	err = resolver.RequireSiteRole(ctx, 4, models.RoleAdmin)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("roleless user: got %v want ErrForbidden", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("forbidden must not also match unauthorized")
	}
}

func TestRequireJournalRoleSiteAdminOverride(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addSiteGrant(5, models.RoleAdmin)
	resolver := NewAccessResolver(provider)
	ctx := context.Background()

	// A site admin with zero journal grants passes for every journal and
	// every non-empty role set.
	for _, journalID := range []int{1, 42, 100000} {
		for _, roles := range [][]models.RolePath{
			{models.RoleManager},
			{models.RoleEditor, models.RoleGuestEditor},
			{models.RoleSectionEditor},
		} {
			if err := resolver.RequireJournalRole(ctx, 5, journalID, roles); err != nil {
				t.Fatalf("site admin override failed for journal %d roles %v: %v", journalID, roles, err)
			}
		}
	}
}

func TestRequireJournalRoleJournalAdminIsNotSiteAdmin(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addJournalGrant(6, 3, models.RoleAdmin)
	resolver := NewAccessResolver(provider)
	ctx := context.Background()

	// The grant names "admin" but is bound to journal 3; it gives nothing on
	// journal 9.
	err := resolver.RequireJournalRole(ctx, 6, 9, []models.RolePath{models.RoleEditor})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("journal-bound admin on foreign journal: got %v want ErrForbidden", err)
	}
}

func TestRequireJournalRoleMatchingGrantPasses(t *testing.T) {
	provider := newFakeGrantProvider()
	provider.addJournalGrant(7, 3, models.RoleManager)
	resolver := NewAccessResolver(provider)

	err := resolver.RequireJournalRole(context.Background(), 7, 3, []models.RolePath{models.RoleManager, models.RoleEditor})
	if err != nil {
		t.Fatalf("matching journal grant must pass: %v", err)
	}
}
