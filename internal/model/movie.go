package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Movie ratings and statuses accepted by the catalog. They are informative:
// the catalog stores whatever the admin sends.
const (
	RatingG    = "G"
	RatingPG   = "PG"
	RatingPG13 = "PG-13"
	RatingR    = "R"

	StatusStreaming = "streaming"
	StatusUpcoming  = "upcoming"
)

// Showtime groups the screening times of one day.
type Showtime struct {
	Date  string   `json:"date"`  // YYYY-MM-DD
	Times []string `json:"times"` // HH:MM, in screening order
}

// Movie is one catalog record. Keys the API does not model are kept in
// Extra and written back unchanged, so a client can attach its own fields.
//
// Showtimes only matter while Status is streaming and ReleaseDate only while
// it is upcoming, but both may be present after a status change.
type Movie struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	PosterURL   string     `json:"poster_url"`
	Rating      string     `json:"rating"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Showtimes   []Showtime `json:"showtimes,omitempty"`
	ReleaseDate string     `json:"release_date,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// movieFields mirrors Movie without its methods so the JSON codec can be
// reused inside MarshalJSON/UnmarshalJSON.
type movieFields Movie

var knownMovieKeys = map[string]struct{}{
	"id": {}, "title": {}, "poster_url": {}, "rating": {}, "description": {},
	"status": {}, "showtimes": {}, "release_date": {},
}

// MarshalJSON writes the modelled fields followed by Extra.
func (m Movie) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(movieFields(m))
	if err != nil {
		return nil, err
	}
	if len(m.Extra) == 0 {
		return base, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, known := knownMovieKeys[k]; known {
			continue
		}
		obj[k] = v
	}
	return json.Marshal(obj)
}

// UnmarshalJSON fills the modelled fields and stashes unknown keys in Extra.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	var f movieFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	for k, v := range obj {
		if _, known := knownMovieKeys[k]; known {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]json.RawMessage)
		}
		f.Extra[k] = v
	}
	*m = Movie(f)
	return nil
}

// FieldError reports a known movie key whose value has the wrong JSON type.
type FieldError struct {
	Field string // JSON path, e.g. "title" or "showtimes.times"
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("movie field %q has the wrong type", e.Field)
}

// MovieFromFields builds a movie from a raw JSON object, forcing id.
func MovieFromFields(id string, fields map[string]json.RawMessage) (Movie, error) {
	return Movie{}.Merge(withID(fields, id))
}

// Merge overlays the top-level keys of patch on m and returns the result.
// The id of m always survives.
func (m Movie) Merge(patch map[string]json.RawMessage) (Movie, error) {
	cur, err := json.Marshal(m)
	if err != nil {
		return Movie{}, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(cur, &obj); err != nil {
		return Movie{}, err
	}
	for k, v := range patch {
		obj[k] = v
	}
	if m.ID != "" {
		obj = withID(obj, m.ID)
	}
	merged, err := json.Marshal(obj)
	if err != nil {
		return Movie{}, err
	}
	var out Movie
	if err := json.Unmarshal(merged, &out); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return Movie{}, &FieldError{Field: ute.Field}
		}
		return Movie{}, fmt.Errorf("decode movie: %w", err)
	}
	return out, nil
}

func withID(fields map[string]json.RawMessage, id string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	raw, _ := json.Marshal(id)
	out["id"] = raw
	return out
}
