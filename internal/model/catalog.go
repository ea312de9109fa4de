package model

// Authority strings checked by the authorization gate. Every
// protected route declares exactly one of these.
const (
	PermDisplayUsers     = "DISPLAY_USERS"
	PermCreateUsers      = "CREATE_USERS"
	PermUpdateUsers      = "UPDATE_USERS"
	PermDeleteUsers      = "DELETE_USERS"
	PermDisplayMovies    = "DISPLAY_MOVIES"
	PermCreateMovies     = "CREATE_MOVIES"
	PermUpdateMovies     = "UPDATE_MOVIES"
	PermDeleteMovies     = "DELETE_MOVIES"
	PermDisplayReviews   = "DISPLAY_REVIEWS"
	PermCreateReviews    = "CREATE_REVIEWS"
	PermUpdateReviews    = "UPDATE_REVIEWS"
	PermDeleteReviews    = "DELETE_REVIEWS"
	PermUpdateOwnReviews = "UPDATE_OWN_REVIEWS"
	PermDeleteOwnReviews = "DELETE_OWN_REVIEWS"
)

// Role names seeded at startup.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// AllPermissions lists every permission in seed order. A
// permission's well-known id is its 1-based position here.
var AllPermissions = []string{
	PermDisplayUsers,
	PermCreateUsers,
	PermUpdateUsers,
	PermDeleteUsers,
	PermDisplayMovies,
	PermCreateMovies,
	PermUpdateMovies,
	PermDeleteMovies,
	PermDisplayReviews,
	PermCreateReviews,
	PermUpdateReviews,
	PermDeleteReviews,
	PermUpdateOwnReviews,
	PermDeleteOwnReviews,
}

// RoleBundle pairs a role name with the permissions it is seeded
// with. Bundles are conventions applied once at seed time; nothing
// re-checks them afterwards.
type RoleBundle struct {
	Name        string
	Permissions []string
}

// RoleBundles lists the well-known roles in seed order (1-based ids).
// USER is intentionally a no-op role; MODERATOR may only display
// users; ADMIN holds the union of all permissions.
var RoleBundles = []RoleBundle{
	{Name: RoleUser, Permissions: nil},
	{Name: RoleModerator, Permissions: []string{PermDisplayUsers}},
	{Name: RoleAdmin, Permissions: AllPermissions},
}

// AllGenres lists the seeded genre catalog in seed order (1-based ids).
var AllGenres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Musical",
	"Mystery",
	"Other",
	"Romance",
	"Science Fiction",
	"Sport",
	"Thriller",
	"Western",
}

// ClassificationSeed pairs a classification name with its brief
// rating code.
type ClassificationSeed struct {
	Name  string
	Brief string
}

// AllClassifications lists the seeded age-rating catalog in seed
// order (1-based ids).
var AllClassifications = []ClassificationSeed{
	{Name: "General Audience", Brief: "G"},
	{Name: "Parental Guideline", Brief: "PG"},
	{Name: "Parents Strongly Cautioned", Brief: "PG-13"},
	{Name: "Restricted", Brief: "R"},
	{Name: "Clearly Adult", Brief: "NC-17"},
}
