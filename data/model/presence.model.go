package model

// PresenceStatus is the three-valued connectivity state of an account.
// It is ephemeral: stored only in the key-value store for the lifetime of
// the connection, and absent means offline.
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceOnBreak PresenceStatus = "onBreak"
	PresenceOffline PresenceStatus = "offline"
)

func (s PresenceStatus) Valid() bool {
	switch s {
	case PresenceOnline, PresenceOnBreak, PresenceOffline:
		return true
	}

	return false
}
