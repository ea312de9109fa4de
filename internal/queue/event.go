// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// ReviewPublishedEvent is emitted when a review is successfully
// created. It carries enough context for downstream consumers to log
// or trigger analytics without querying the primary database.
type ReviewPublishedEvent struct {
	ReviewID    uint64 `json:"review_id"`
	MovieID     uint64 `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
	AuthorID    uint64 `json:"author_id"`
	AuthorEmail string `json:"author_email"`
	Score       int16  `json:"score"`
	PublishedAt string `json:"published_at"`
}
