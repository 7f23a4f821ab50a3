package services

import "context"

// persistentContext keeps the values of ctx but detaches its cancellation,
// for work that must outlive the request (post-commit notifications).
func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
