package export

import (
	"io"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
	"github.com/goccy/go-json"
	"golang.org/x/text/encoding/charmap"
)

type movieJSON struct {
	ID       string   `json:"id"`
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Genres   []string `json:"genres"`
	Keywords []string `json:"keywords"`
	Votes    int      `json:"votes"`
	Rating   float32  `json:"rating"`
	Plot     string   `json:"plot"`
}

// latin1 decodes ISO-8859-1 text, the encoding of the list dumps, to UTF-8.
// Every byte maps to one rune, so distinct inputs stay distinct.
func latin1(s string) string {
	for i := range len(s) {
		if s[i] >= 0x80 {
			out, err := charmap.ISO8859_1.NewDecoder().String(s)
			if err != nil {
				return s
			}
			return out
		}
	}
	return s
}

func latin1All(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = latin1(s)
	}
	return out
}

// slug builds the ASCII slug of an identity key.
func slug(id string) string {
	return logger.StringToSlug(latin1(id))
}

// WriteJSON writes the registry as an indented JSON array ordered by id.
// Text fields are converted from ISO-8859-1 to UTF-8.
func WriteJSON(w io.Writer, reg *movies.Registry) error {
	ids := reg.IDs()
	out := make([]movieJSON, 0, len(ids))
	for _, id := range ids {
		rec, _ := reg.Get(id)
		out = append(out, movieJSON{
			ID:       latin1(id),
			Slug:     slug(id),
			Title:    latin1(rec.Title),
			Year:     rec.Year,
			Genres:   latin1All(rec.Genres),
			Keywords: latin1All(rec.Keywords),
			Votes:    rec.Votes,
			Rating:   rec.Rating,
			Plot:     latin1(rec.Plot),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
