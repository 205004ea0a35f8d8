package user

// Principal identifies the authenticated actor on a request. ActorID is the
// coach or admin identifier the client supplies; roles are free-form labels.
type Principal struct {
	ActorID string
	Roles   []string
}

func (p Principal) HasRole(role string) bool {
	for _, candidate := range p.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}
