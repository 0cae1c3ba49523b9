package models

// SimpleUserList is an ordered list of user snapshots persisted as a JSON
// document column. Appends are unconditional; the store does not deduplicate.
type SimpleUserList []SimpleUser

// RemoveByUsername deletes every entry matching username and reports whether
// anything was removed. Removing an absent user is a no-op, not an error.
func (l SimpleUserList) RemoveByUsername(username string) (SimpleUserList, bool) {
	out := l[:0]
	removed := false
	for _, u := range l {
		if u.Username == username {
			removed = true
			continue
		}
		out = append(out, u)
	}
	return out, removed
}

// UserRelationship holds the social graph record for one user: four
// independent lists of user snapshots. Following/followers are directed edge
// sets with no automatic linkage between one user's following list and
// another's followers list; friends is a separate symmetric-intent list.
// Blocked is carried for schema compatibility; no operation populates it.
type UserRelationship struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Following SimpleUserList `gorm:"serializer:json" json:"following"`
	Followers SimpleUserList `gorm:"serializer:json" json:"followers"`
	Blocked   SimpleUserList `gorm:"serializer:json" json:"blocked"`
	Friends   SimpleUserList `gorm:"serializer:json" json:"friends"`
}

// NewUserRelationship returns an empty relationship record for username,
// created as part of registration.
func NewUserRelationship(username string) *UserRelationship {
	return &UserRelationship{
		Username:  username,
		Following: SimpleUserList{},
		Followers: SimpleUserList{},
		Blocked:   SimpleUserList{},
		Friends:   SimpleUserList{},
	}
}
