package services

import (
	"context"
	"fmt"

	"journal-management-api/models"
)

// RoleGrantProvider is the read-only view of the role-grant relation the
// resolver depends on. It is injected so the resolver can be exercised with
// an in-memory fake; the production implementation is GormRoleGrantStore.
type RoleGrantProvider interface {
	// ResolveActor confirms the user id belongs to an authenticated, active
	// account. It returns ErrUnauthorized (possibly wrapped) when it does not.
	ResolveActor(ctx context.Context, userID int) error

	// ListRoleGrants returns every live grant held by the user, site and
	// journal scoped alike.
	ListRoleGrants(ctx context.Context, userID int) ([]models.RoleGrant, error)
}

// AccessResolver answers role questions at site or journal granularity. It
// is a pure read-and-decide layer over the grant relation; it never writes.
type AccessResolver struct {
	grants RoleGrantProvider
}

func NewAccessResolver(grants RoleGrantProvider) *AccessResolver {
	return &AccessResolver{grants: grants}
}

// HasSiteRole reports whether the user holds the role with site scope.
// Journal-scoped grants never satisfy a site check, even for admin.
func (r *AccessResolver) HasSiteRole(ctx context.Context, userID int, role models.RolePath) (bool, error) {
	grants, err := r.grants.ListRoleGrants(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to list role grants: %w", err)
	}
	for _, grant := range grants {
		if grant.IsSite() && grant.RolePath == role {
			return true, nil
		}
	}
	return false, nil
}

// HasJournalRole reports whether the user holds at least one of the given
// roles scoped to the journal. Any single match suffices. Site-scoped grants
// do not match here; the admin override lives in RequireJournalRole only.
func (r *AccessResolver) HasJournalRole(ctx context.Context, userID, journalID int, roles []models.RolePath) (bool, error) {
	grants, err := r.grants.ListRoleGrants(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to list role grants: %w", err)
	}
	for _, grant := range grants {
		if !grant.AppliesToJournal(journalID) {
			continue
		}
		for _, role := range roles {
			if grant.RolePath == role {
				return true, nil
			}
		}
	}
	return false, nil
}

// RequireSiteRole fails with ErrUnauthorized when the actor cannot be
// resolved, ErrForbidden when the actor lacks the site-scoped role.
func (r *AccessResolver) RequireSiteRole(ctx context.Context, userID int, role models.RolePath) error {
	if err := r.grants.ResolveActor(ctx, userID); err != nil {
		return err
	}
	ok, err := r.HasSiteRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// RequireJournalRole fails with ErrUnauthorized when the actor cannot be
// resolved. An authenticated actor passes when they hold one of the roles
// scoped to the journal, or hold site-scoped admin: the site admin override
// satisfies every journal-scoped check without a matching journal grant.
func (r *AccessResolver) RequireJournalRole(ctx context.Context, userID, journalID int, roles []models.RolePath) error {
	if err := r.grants.ResolveActor(ctx, userID); err != nil {
		return err
	}
	ok, err := r.HasJournalRole(ctx, userID, journalID, roles)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	admin, err := r.HasSiteRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}
	return ErrForbidden
}
