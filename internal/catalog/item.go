package catalog

import "strings"

// Kind identifies which catalog variant an Item came from.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "tv"
	KindPerson Kind = "person"
)

// ParseKind maps a stored or wire kind string to a Kind, defaulting to movie
// for unknown values so legacy entries stay usable.
func ParseKind(value string) Kind {
	switch Kind(strings.TrimSpace(value)) {
	case KindSeries:
		return KindSeries
	case KindPerson:
		return KindPerson
	default:
		return KindMovie
	}
}

// Item is the normalized catalog result shape shared by search and detail
// lookups. Title and OriginalTitle are never empty for a well-formed wire
// payload; person results fall back to the display name.
type Item struct {
	ID            int64
	Kind          Kind
	Title         string
	OriginalTitle string
	Synopsis      string
	ReleaseDate   string
	ImagePath     string
}

// Year returns the four-digit year of the release date, or "" when unknown.
func (i Item) Year() string {
	if len(i.ReleaseDate) >= 4 {
		return i.ReleaseDate[:4]
	}
	return ""
}

// Label renders "Title (Year)" or just the title when the year is unknown.
func (i Item) Label() string {
	if year := i.Year(); year != "" {
		return i.Title + " (" + year + ")"
	}
	return i.Title
}

// wireResult is the union of the field sets TMDB returns for movie, tv, and
// person results.
type wireResult struct {
	ID            int64  `json:"id"`
	MediaType     string `json:"media_type"`
	Title         string `json:"title"`
	Name          string `json:"name"`
	OriginalTitle string `json:"original_title"`
	OriginalName  string `json:"original_name"`
	Overview      string `json:"overview"`
	ReleaseDate   string `json:"release_date"`
	FirstAirDate  string `json:"first_air_date"`
	PosterPath    string `json:"poster_path"`
	ProfilePath   string `json:"profile_path"`
}

type wireSearchResponse struct {
	Page    int          `json:"page"`
	Results []wireResult `json:"results"`
}

// normalize converts a wire result into an Item. The kind is always set:
// when the wire payload omits media_type (detail endpoints do), the caller
// supplies a hint; when both are absent the field sets decide.
func (w wireResult) normalize(hint Kind) Item {
	kind := hint
	if w.MediaType != "" {
		kind = ParseKind(w.MediaType)
	}
	if kind == "" {
		switch {
		case w.Title != "" || w.OriginalTitle != "" || w.ReleaseDate != "":
			kind = KindMovie
		case w.FirstAirDate != "" || w.OriginalName != "":
			kind = KindSeries
		default:
			kind = KindPerson
		}
	}

	title := firstNonEmpty(w.Title, w.Name)
	item := Item{
		ID:            w.ID,
		Kind:          kind,
		Title:         title,
		OriginalTitle: firstNonEmpty(w.OriginalTitle, w.OriginalName, title),
		Synopsis:      strings.TrimSpace(w.Overview),
		ReleaseDate:   firstNonEmpty(w.ReleaseDate, w.FirstAirDate),
		ImagePath:     firstNonEmpty(w.PosterPath, w.ProfilePath),
	}
	return item
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
