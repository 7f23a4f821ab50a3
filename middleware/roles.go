package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"journal-management-api/models"
	"journal-management-api/services"

	"github.com/gin-gonic/gin"
)

// ActorID pulls the authenticated user id set by AuthMiddleware.
func ActorID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}

// RequireSiteRole gates a route on a site-scoped role. Journal-scoped grants
// never pass here.
func RequireSiteRole(resolver *services.AccessResolver, role models.RolePath) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := ActorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		err := resolver.RequireSiteRole(c.Request.Context(), actorID, role)
		if err != nil {
			abortOnAccessError(c, err)
			return
		}
		c.Next()
	}
}

// RequireJournalRoleFromRequest gates a route on journal-scoped roles, taking
// the journal id from the named path parameter. The site-admin override
// applies, as in every journal-scoped check.
func RequireJournalRoleFromRequest(resolver *services.AccessResolver, journalParam string, roles ...models.RolePath) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, ok := ActorID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		journalID, err := strconv.Atoi(c.Param(journalParam))
		if err != nil || journalID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID"})
			c.Abort()
			return
		}

		if err := resolver.RequireJournalRole(c.Request.Context(), actorID, journalID, roles); err != nil {
			abortOnAccessError(c, err)
			return
		}
		c.Next()
	}
}

// abortOnAccessError maps resolver failures to distinct responses: a missing
// session sends the client to login, a missing role does not.
func abortOnAccessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
	}
	c.Abort()
}
