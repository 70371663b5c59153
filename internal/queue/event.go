// Package queue defines message payloads exchanged over the message broker.
package queue

// PostCreatedEvent is published when a blog post is successfully created. It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type PostCreatedEvent struct {
	PostID     uint64 `json:"post_id"`
	AuthorID   uint64 `json:"author_id"`
	Title      string `json:"title"`
	MovieTitle string `json:"movie_title"`
	CreatedAt  string `json:"created_at"`
}
