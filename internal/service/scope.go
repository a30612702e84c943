package service

import "gymwell/gym-app/internal/domain"

// ScopeUserID decides whose records a read may cover. Members are always
// pinned to their own id whatever they ask for; staff get the requested id,
// where nil means everyone.
func ScopeUserID(caller domain.Caller, requested *int64) *int64 {
	if caller.Role.IsMember() {
		id := caller.ID
		return &id
	}
	return requested
}
