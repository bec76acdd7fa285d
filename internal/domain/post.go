package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post is a top-level authored entry. AuthorID is set at creation and
// never changes; only the author may update or delete the post.
type Post struct {
	ID        uuid.UUID
	Title     string
	Content   string
	AuthorID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
