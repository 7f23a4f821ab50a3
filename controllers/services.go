package controllers

import (
	"journal-management-api/config"
	"journal-management-api/services"
)

var (
	accessResolver *services.AccessResolver
	workflowEngine *services.WorkflowEngine
)

// InitServices wires the controllers to the database-backed service layer.
// Call after config.InitDB.
func InitServices() {
	accessResolver = services.NewAccessResolver(services.NewGormRoleGrantStore(config.DB))
	workflowEngine = services.NewWorkflowEngine(services.NewGormWorkflowStore(config.DB), accessResolver).
		WithNotifier(services.NewMailNotifier(config.DB))
}

// Resolver exposes the shared access resolver for route-level role gates.
func Resolver() *services.AccessResolver {
	return accessResolver
}
