package models

import "time"

type Notice struct {
	ID          int        `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Body        string     `json:"body" db:"body"`
	Pinned      bool       `json:"pinned" db:"pinned"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	AuthorID    int        `json:"author_id" db:"author_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

func (n Notice) Published(now time.Time) bool {
	return n.PublishedAt != nil && !n.PublishedAt.After(now)
}
