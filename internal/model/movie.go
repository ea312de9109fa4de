package model

import "time"

// Genre is a catalog row from the `genres` table, seeded once at
// startup and referenced many-to-many by movies.
type Genre struct {
	ID   uint64 `json:"id"`   // genres.id
	Name string `json:"name"` // genres.name (unique)
}

// MovieClassification is an age-rating catalog row from the
// `classifications` table (e.g. "Restricted" / "R"). Seeded once;
// immutable thereafter in practice.
//
// Fields:
//  ID    – primary key identifier (well-known, assigned at seed time).
//  Name  – unique classification name.
//  Brief – short rating code (G, PG, PG-13, R, NC-17).
type MovieClassification struct {
	ID    uint64 `json:"id"`    // classifications.id
	Name  string `json:"name"`  // classifications.name
	Brief string `json:"brief"` // classifications.brief
}

// Movie corresponds to a row in the `movies` table plus its genre
// links from `movie_genres`. The title is unique case-insensitively.
//
// Fields:
//  ID               – primary key identifier.
//  Title            – unique movie title.
//  Description      – free-text description.
//  ClassificationID – foreign key into the classifications table.
//  Classification   – the referenced classification, populated by joins.
//  Genres           – zero or more linked genres.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type Movie struct {
	ID               uint64               // movies.id
	Title            string               // movies.title
	Description      string               // movies.description
	ClassificationID uint64               // movies.classification_id
	Classification   *MovieClassification // loaded classification
	Genres           []Genre              // via movie_genres join table
	CreatedAt        time.Time            // movies.created_at
	UpdatedAt        time.Time            // movies.updated_at
}
