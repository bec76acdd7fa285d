package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a post. ParentID, when set, points at the comment
// being replied to; replies themselves cannot be nested further.
type Comment struct {
	ID        uuid.UUID
	Content   string
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
