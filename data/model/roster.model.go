package model

// Roster is the viewer-scoped directory snapshot: the accounts and groups
// this viewer may see, replaced wholesale on every change.
type Roster struct {
	Users  []User  `json:"users"`
	Groups []Group `json:"groups"`
}

// HasGroup reports whether the roster still contains the given group.
func (r Roster) HasGroup(hex string) bool {
	for _, g := range r.Groups {
		if g.ID.Hex() == hex {
			return true
		}
	}

	return false
}
