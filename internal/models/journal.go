package models

import (
	"time"

	"github.com/google/uuid"
)

// StringList is an ordered sequence of usernames persisted as a JSON column.
// Duplicates are allowed; a user liking twice appears twice.
type StringList []string

// RemoveFirst deletes the first occurrence of value and reports whether an
// element was removed.
func (l StringList) RemoveFirst(value string) (StringList, bool) {
	for i, v := range l {
		if v == value {
			return append(l[:i:i], l[i+1:]...), true
		}
	}
	return l, false
}

// Comment is embedded within a journal's comment list. Replies is a
// structurally recursive slot kept for schema compatibility; no operation
// writes to it.
type Comment struct {
	ID        string     `json:"id"`
	User      SimpleUser `json:"simple_user"`
	Content   string     `json:"content"`
	Replies   []Comment  `json:"replies"`
	CreatedAt time.Time  `json:"created_at"`
}

// CommentList is the journal's ordered comment thread, persisted as a JSON
// column. Comments have no lifecycle independent of their journal.
type CommentList []Comment

// NewComment constructs a comment with a fresh identifier, an empty replies
// list and the creation timestamp set to now.
func NewComment(user SimpleUser, content string) Comment {
	return Comment{
		ID:        uuid.NewString(),
		User:      user,
		Content:   content,
		Replies:   []Comment{},
		CreatedAt: time.Now().UTC(),
	}
}

// Journal represents one journal entry. The author is referenced by a
// denormalized username/avatar pair, not a foreign key. Likes and comments
// live inside the record and are mutated read-modify-write; IsDeleted is a
// soft-delete flag filtered only on the all-journals listing.
type Journal struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"not null" json:"title"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	Username   string      `gorm:"index;not null" json:"username"`
	UserAvatar string      `json:"user_avatar"`
	Likes      StringList  `gorm:"serializer:json" json:"likes"`
	Comments   CommentList `gorm:"serializer:json" json:"comments"`
	IsDeleted  bool        `gorm:"default:false" json:"is_deleted"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
