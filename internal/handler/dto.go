package handler

import (
	"regexp"
	"strings"

	"github.com/moviemetrics/movie-metrics/internal/errs"
	"github.com/moviemetrics/movie-metrics/internal/model"
	"github.com/moviemetrics/movie-metrics/internal/service"
)

// Request DTOs and their field validation. The messages are part of
// the API contract and mirror the constraint texts clients already
// depend on. Pointer fields distinguish "absent" from zero values.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r credentialsRequest) Validate() error {
	fields := map[string]string{}
	validateEmail(fields, r.Email)
	validatePassword(fields, r.Password)
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

type userRequest struct {
	Email               string  `json:"email"`
	Password            string  `json:"password"`
	IsPasswordEncrypted *bool   `json:"isPasswordEncrypted"`
	RoleID              *uint64 `json:"roleId"`
}

func (r userRequest) Validate() error {
	fields := map[string]string{}
	validateEmail(fields, r.Email)
	validatePassword(fields, r.Password)
	if r.IsPasswordEncrypted == nil {
		fields["isPasswordEncrypted"] = "IsPasswordEncrypted must be specified"
	}
	if r.RoleID == nil {
		fields["roleId"] = "Role Id cannot be empty"
	} else if *r.RoleID < 1 {
		fields["roleId"] = "Role Id must be valid"
	}
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

type movieRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	GenreIDs         *[]uint64 `json:"genreIds"`
	ClassificationID *uint64   `json:"classificationId"`
}

func (r movieRequest) Validate() error {
	fields := map[string]string{}
	switch {
	case strings.TrimSpace(r.Title) == "":
		fields["title"] = "Title cannot be empty"
	case len(r.Title) < 3:
		fields["title"] = "Title must be at least 3 characters long"
	case len(r.Title) > 64:
		fields["title"] = "Title can be at most 64 characters long"
	}
	switch {
	case strings.TrimSpace(r.Description) == "":
		fields["description"] = "Description cannot be empty"
	case len(r.Description) < 10:
		fields["description"] = "Description must be at least 10 characters long"
	case len(r.Description) > 2048:
		fields["description"] = "Description can be at most 2048 characters long"
	}
	if r.GenreIDs == nil {
		fields["genreIds"] = "Genre Ids must be provided"
	}
	if r.ClassificationID == nil {
		fields["classificationId"] = "Classification Id must be provided"
	} else if *r.ClassificationID < 1 {
		fields["classificationId"] = "Classification Id must be valid"
	}
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

func (r movieRequest) toInput() service.MovieInput {
	in := service.MovieInput{Title: r.Title, Description: r.Description}
	if r.ClassificationID != nil {
		in.ClassificationID = *r.ClassificationID
	}
	if r.GenreIDs != nil {
		in.GenreIDs = *r.GenreIDs
	}
	return in
}

type reviewRequest struct {
	Score   *int16 `json:"score"`
	Content string `json:"content"`
}

func (r reviewRequest) Validate() error {
	fields := map[string]string{}
	switch {
	case r.Score == nil:
		fields["score"] = "Score cannot be empty"
	case *r.Score < 1:
		fields["score"] = "Score cannot be lower than 1"
	case *r.Score > 5:
		fields["score"] = "Score cannot be higher than 5"
	}
	if len(r.Content) > 2048 {
		fields["content"] = "Content cannot be longer than 2048 characters"
	}
	if len(fields) > 0 {
		return &errs.ValidationError{Fields: fields}
	}
	return nil
}

func (r reviewRequest) toInput(movieID uint64) service.ReviewInput {
	in := service.ReviewInput{MovieID: movieID, Content: r.Content}
	if r.Score != nil {
		in.Score = *r.Score
	}
	return in
}

func (r userRequest) toInput() service.UserInput {
	in := service.UserInput{Email: r.Email, Password: r.Password}
	if r.IsPasswordEncrypted != nil {
		in.IsPasswordEncrypted = *r.IsPasswordEncrypted
	}
	if r.RoleID != nil {
		in.RoleID = *r.RoleID
	}
	return in
}

func validateEmail(fields map[string]string, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		fields["email"] = "Email cannot be empty"
	case len(email) > 64:
		fields["email"] = "Email can be at most 64 characters long"
	case !emailPattern.MatchString(email):
		fields["email"] = "Email is invalid"
	}
}

func validatePassword(fields map[string]string, password string) {
	switch {
	case password == "":
		fields["password"] = "Password cannot be empty"
	case len(password) < 8:
		fields["password"] = "Password must be at least 8 characters long"
	case len(password) > 32:
		fields["password"] = "Password can be at most 32 characters long"
	case !passwordMix(password):
		fields["password"] = "Password must contain 1 uppercase, 1 lowercase and 1 number"
	}
}

func passwordMix(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return lower && upper && digit
}

// ----- Response DTOs -----

type authResponse struct {
	Token   *string `json:"token"`
	Message *string `json:"message,omitempty"`
}

type userResponse struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func newUserResponse(u model.User) userResponse {
	role := ""
	if u.Role != nil {
		role = u.Role.Name
	}
	return userResponse{ID: u.ID, Email: u.Email, Role: role}
}

type movieResponse struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
	Genres         string `json:"genres"`
}

func newMovieResponse(m model.Movie) movieResponse {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	cls := ""
	if m.Classification != nil {
		cls = m.Classification.Brief
	}
	return movieResponse{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		Classification: cls,
		Genres:         strings.Join(names, ", "),
	}
}

type reviewResponse struct {
	ID       uint64 `json:"id"`
	MovieID  uint64 `json:"movieId"`
	AuthorID uint64 `json:"authorId"`
	Score    int16  `json:"score"`
	Content  string `json:"content"`
}

func newReviewResponse(r model.Review) reviewResponse {
	return reviewResponse{ID: r.ID, MovieID: r.MovieID, AuthorID: r.AuthorID, Score: r.Score, Content: r.Content}
}
