package movies

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
)

// Range is a closed interval [From, To].
type Range[T cmp.Ordered] struct {
	From T
	To   T
}

// Single returns the range [x, x].
func Single[T cmp.Ordered](x T) Range[T] {
	return Range[T]{From: x, To: x}
}

// Contains reports whether From <= x <= To.
func (r Range[T]) Contains(x T) bool {
	return x >= r.From && x <= r.To
}

func (r Range[T]) String() string {
	return fmt.Sprintf("%v-%v", r.From, r.To)
}

// Criteria is a conjunction of optional clauses. A nil clause imposes no
// constraint. Genres is a clause as soon as it is non-nil, so an empty
// non-nil list matches nothing.
type Criteria struct {
	Title   *string
	Years   *Range[int]
	Genres  []string
	Ratings *Range[float32]
}

// Empty reports whether no clause is set.
func (c Criteria) Empty() bool {
	return c.Title == nil && c.Years == nil && c.Genres == nil && c.Ratings == nil
}

func (c Criteria) String() string {
	if c.Empty() {
		return "none"
	}
	var parts []string
	if c.Title != nil {
		parts = append(parts, "title~"+strconv.Quote(*c.Title))
	}
	if c.Years != nil {
		parts = append(parts, "years:"+c.Years.String())
	}
	if c.Genres != nil {
		parts = append(parts, "genres:"+strings.Join(c.Genres, ","))
	}
	if c.Ratings != nil {
		parts = append(parts, "ratings:"+c.Ratings.String())
	}
	return strings.Join(parts, " ")
}

// Match evaluates the criteria against one record.
func (c Criteria) Match(rec *MovieRecord) bool {
	if c.Title != nil && !containsFold(rec.Title, *c.Title) {
		return false
	}
	if c.Years != nil && !c.Years.Contains(rec.Year) {
		return false
	}
	if c.Genres != nil && !sharesGenre(rec.Genres, c.Genres) {
		return false
	}
	if c.Ratings != nil {
		// zero votes means never rated, not rated zero
		if rec.Votes == 0 || !c.Ratings.Contains(rec.Rating) {
			return false
		}
	}
	return true
}

// Filter returns the records of reg matching c. The result shares record
// pointers with reg. With no clauses it holds every key of reg.
func Filter(reg *Registry, c Criteria) *Registry {
	out := NewRegistry()
	reg.Range(func(id string, rec *MovieRecord) bool {
		if c.Match(rec) {
			out.put(id, rec)
		}
		return true
	})
	return out
}

// containsFold and sharesGenre fold ASCII letters only. The list dumps are
// ISO-8859-1, so bytes >= 0x80 are compared as they are.
func containsFold(s, substr string) bool {
	return strings.Contains(upperASCII(s), upperASCII(substr))
}

func sharesGenre(have, want []string) bool {
	for _, h := range have {
		hu := upperASCII(h)
		for _, w := range want {
			if hu == upperASCII(w) {
				return true
			}
		}
	}
	return false
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// ParseYearRange parses "1970-2012" or a single year "1999".
func ParseYearRange(expr string) (Range[int], error) {
	from, to, err := splitRange(expr)
	if err != nil {
		return Range[int]{}, err
	}
	a, errA := strconv.Atoi(from)
	b, errB := strconv.Atoi(to)
	if errA != nil || errB != nil {
		return Range[int]{}, rangeError(expr)
	}
	if a > b {
		return Range[int]{}, rangeError(expr)
	}
	return Range[int]{From: a, To: b}, nil
}

// ParseRatingRange parses "5.0-10" or a single rating "7.5".
func ParseRatingRange(expr string) (Range[float32], error) {
	from, to, err := splitRange(expr)
	if err != nil {
		return Range[float32]{}, err
	}
	a, errA := strconv.ParseFloat(from, 32)
	b, errB := strconv.ParseFloat(to, 32)
	if errA != nil || errB != nil || a > b {
		return Range[float32]{}, rangeError(expr)
	}
	return Range[float32]{From: float32(a), To: float32(b)}, nil
}

func splitRange(expr string) (string, string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", "", rangeError(expr)
	}
	from, to, found := strings.Cut(expr, "-")
	if !found {
		return expr, expr, nil
	}
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return "", "", rangeError(expr)
	}
	return from, to, nil
}

func rangeError(expr string) error {
	return apperrors.Newf(apperrors.ErrClassValidation, "parse_range", "%w: %q", apperrors.ErrInvalidRange, expr)
}
