package domain

import "context"

//go:generate mockgen -source=user_repository.go -destination=user_repository_mock.go -package=domain

type UserRepository interface {
	// FindByIDs bulk-loads users keyed by id. Ids without a matching
	// record are simply absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]*User, error)
}
