package model

import "time"

// Review is a scored opinion of one user about one movie, stored in
// the `reviews` table. At most one review exists per (movie, author)
// pair; the table carries a unique key over both columns.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – reviewed movie.
//  AuthorID  – user who wrote the review.
//  Score     – rating in [1,5].
//  Content   – optional free-text body.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Review struct {
	ID        uint64    // reviews.id
	MovieID   uint64    // reviews.movie_id
	AuthorID  uint64    // reviews.author_id
	Score     int16     // reviews.score
	Content   string    // reviews.content
	CreatedAt time.Time // reviews.created_at
	UpdatedAt time.Time // reviews.updated_at
}
