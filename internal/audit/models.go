package audit

import "time"

// Event is an immutable, append-only record of a security-relevant action.
//
// Invariants:
// - Events are never updated or deleted.
// - Token strings are never recorded; only the identity derived from them.
type Event struct {
	ID   string    `json:"id" db:"id"`
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event (if any).
	ActorUserID int64  `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorEmail  string `json:"actor_email,omitempty" db:"actor_email"`

	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// ArticleID is set for article mutations.
	ArticleID int64 `json:"article_id,omitempty" db:"article_id"`

	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLogin          EventType = "login"
	EventTypeTokenRefreshed EventType = "token_refreshed"
	EventTypeLogout         EventType = "logout"
	EventTypeArticleUpdated EventType = "article_updated"
	EventTypeArticleDeleted EventType = "article_deleted"
)
