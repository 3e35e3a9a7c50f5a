package models

// Movie is a read-only catalog entry. The cart snapshots the fields it
// needs at add-time, so later catalog edits never touch existing items.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Duration    string   `json:"duration"`
	Rating      float64  `json:"rating"`
	Poster      string   `json:"poster"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Showtimes   []string `json:"showtimes"`
	Price       float64  `json:"price"`
	InTheater   bool     `json:"is_in_theater"`
	ReleaseDate string   `json:"release_date,omitempty"`
}
