package catalog

import "cinemax/internal/models"

// Provider is the read-only catalog contract consumed by the cart. The cart
// never mutates catalog entries.
type Provider interface {
	GetMovieByID(id int) (*models.Movie, bool)
	ListMovies() []models.Movie
}

// Static serves a fixed in-memory movie dataset.
type Static struct {
	movies []models.Movie
	byID   map[int]int
}

func NewStatic(movies []models.Movie) *Static {
	c := &Static{
		movies: movies,
		byID:   make(map[int]int, len(movies)),
	}
	for i, m := range movies {
		c.byID[m.ID] = i
	}
	return c
}

// NewDefault builds the catalog with the storefront's baked-in titles.
func NewDefault() *Static {
	return NewStatic(defaultMovies())
}

func (c *Static) GetMovieByID(id int) (*models.Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	m := c.movies[i]
	return &m, true
}

func (c *Static) ListMovies() []models.Movie {
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

func defaultMovies() []models.Movie {
	return []models.Movie{
		{
			ID:        1,
			Title:     "Avengers: Endgame",
			Genre:     "Action",
			Duration:  "181 min",
			Rating:    8.4,
			Poster:    "/images/endgame.svg",
			Year:      2019,
			Director:  "Anthony Russo, Joe Russo",
			Cast:      []string{"Robert Downey Jr.", "Chris Evans", "Mark Ruffalo"},
			Showtimes: []string{"14:00", "17:30", "21:00"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        2,
			Title:     "Interstellar",
			Genre:     "Sci-Fi",
			Duration:  "169 min",
			Rating:    8.6,
			Poster:    "/images/interstellar.svg",
			Year:      2014,
			Director:  "Christopher Nolan",
			Cast:      []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
			Showtimes: []string{"15:30", "19:00", "22:30"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        3,
			Title:     "Black Panther",
			Genre:     "Action",
			Duration:  "134 min",
			Rating:    7.3,
			Poster:    "/images/panther.svg",
			Year:      2018,
			Director:  "Ryan Coogler",
			Cast:      []string{"Chadwick Boseman", "Michael B. Jordan", "Lupita Nyong'o"},
			Showtimes: []string{"16:00", "19:30", "22:45"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        4,
			Title:     "Matrix Resurrections",
			Genre:     "Sci-Fi",
			Duration:  "148 min",
			Rating:    5.7,
			Poster:    "/images/matrix.svg",
			Year:      2021,
			Director:  "Lana Wachowski",
			Cast:      []string{"Keanu Reeves", "Carrie-Anne Moss"},
			Showtimes: []string{"14:30", "18:00", "21:30"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        5,
			Title:     "Dune",
			Genre:     "Sci-Fi",
			Duration:  "155 min",
			Rating:    8.0,
			Poster:    "/images/dune.svg",
			Year:      2021,
			Director:  "Denis Villeneuve",
			Cast:      []string{"Timothée Chalamet", "Rebecca Ferguson", "Oscar Isaac"},
			Showtimes: []string{"15:00", "18:30", "22:00"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        6,
			Title:     "Spider-Man: No Way Home",
			Genre:     "Action",
			Duration:  "148 min",
			Rating:    8.2,
			Poster:    "/images/spiderman.svg",
			Year:      2021,
			Director:  "Jon Watts",
			Cast:      []string{"Tom Holland", "Zendaya", "Benedict Cumberbatch"},
			Showtimes: []string{"14:15", "17:45", "21:15"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:        7,
			Title:     "Top Gun: Maverick",
			Genre:     "Action",
			Duration:  "131 min",
			Rating:    8.3,
			Poster:    "/images/topgun.svg",
			Year:      2022,
			Director:  "Joseph Kosinski",
			Cast:      []string{"Tom Cruise", "Miles Teller", "Jennifer Connelly"},
			Showtimes: []string{"16:30", "20:00", "23:00"},
			Price:     25.00,
			InTheater: true,
		},
		{
			ID:          8,
			Title:       "Avatar: The Way of Water 2",
			Genre:       "Sci-Fi",
			Duration:    "190 min",
			Rating:      0,
			Poster:      "/images/avatar.svg",
			Year:        2025,
			Director:    "James Cameron",
			Cast:        []string{"Sam Worthington", "Zoe Saldana"},
			Showtimes:   []string{},
			Price:       25.00,
			InTheater:   false,
			ReleaseDate: "2025-12-15",
		},
	}
}
