package api

// Wire types for the catalog backend. Shapes mirror the backend's JSON;
// mapping to domain types happens in mapper.go.

type mediaDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	DurationMin int      `json:"duration"` // minutes
	GenreIDs    []string `json:"genreIds"`
	TypeID      string   `json:"typeId"`
	PosterURL   string   `json:"posterUrl"`
	TMDBID      int      `json:"tmdbId"`
}

type paginationDTO struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

type mediaListResponse struct {
	Items      []mediaDTO    `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

type genreDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type typeDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type personDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MediaCount int    `json:"mediaCount"`
}

type statsDTO struct {
	Total          int `json:"total"`
	Active         int `json:"active"`
	AddedThisMonth int `json:"addedThisMonth"`
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}
