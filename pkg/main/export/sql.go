package export

import (
	"bufio"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
)

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

// Dialects lists the accepted SQL dialects, the default first.
var Dialects = []string{DialectMySQL, DialectSQLite}

type dialect struct {
	ident   func(string) string
	escape  *strings.Replacer
	schemas map[string]string
}

var dialects = map[string]dialect{
	DialectMySQL: {
		ident:  func(s string) string { return "`" + s + "`" },
		escape: strings.NewReplacer(`\`, `\\`, `'`, `''`),
		schemas: map[string]string{
			"movies": "CREATE TABLE IF NOT EXISTS `movies` (\n" +
				"\t`id` bigint(32) unsigned NOT NULL AUTO_INCREMENT,\n" +
				"\t`name` varchar(255) NOT NULL DEFAULT '',\n" +
				"\t`title` varchar(255) NOT NULL DEFAULT '',\n" +
				"\t`slug` varchar(255) NOT NULL DEFAULT '',\n" +
				"\t`year` int(4) NOT NULL DEFAULT '0',\n" +
				"\t`rating` decimal(3,1) NOT NULL DEFAULT '0',\n" +
				"\t`votes` int(16) NOT NULL DEFAULT '0',\n" +
				"\t`genres` varchar(255) NOT NULL DEFAULT '',\n" +
				"\t`keywords` text NOT NULL,\n" +
				"\t`plot` longtext NOT NULL,\n" +
				"\tPRIMARY KEY (`id`)\n" +
				") ENGINE=MyISAM DEFAULT CHARSET=utf8 AUTO_INCREMENT=1 ;\n",
			"genres":   mysqlTagSchema("genres"),
			"keywords": mysqlTagSchema("keywords"),
		},
	},
	DialectSQLite: {
		ident:  func(s string) string { return `"` + s + `"` },
		escape: strings.NewReplacer(`'`, `''`),
		schemas: map[string]string{
			"movies": "CREATE TABLE IF NOT EXISTS \"movies\" (\n" +
				"\t\"id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
				"\t\"name\" TEXT NOT NULL DEFAULT '',\n" +
				"\t\"title\" TEXT NOT NULL DEFAULT '',\n" +
				"\t\"slug\" TEXT NOT NULL DEFAULT '',\n" +
				"\t\"year\" INTEGER NOT NULL DEFAULT 0,\n" +
				"\t\"rating\" REAL NOT NULL DEFAULT 0,\n" +
				"\t\"votes\" INTEGER NOT NULL DEFAULT 0,\n" +
				"\t\"genres\" TEXT NOT NULL DEFAULT '',\n" +
				"\t\"keywords\" TEXT NOT NULL DEFAULT '',\n" +
				"\t\"plot\" TEXT NOT NULL DEFAULT ''\n" +
				");\n",
			"genres":   sqliteTagSchema("genres"),
			"keywords": sqliteTagSchema("keywords"),
		},
	},
}

func mysqlTagSchema(table string) string {
	return "CREATE TABLE IF NOT EXISTS `" + table + "` (\n" +
		"\t`id` bigint(32) unsigned NOT NULL AUTO_INCREMENT,\n" +
		"\t`name` varchar(255) NOT NULL DEFAULT '',\n" +
		"\t`count` int(16) NOT NULL DEFAULT '0',\n" +
		"\tPRIMARY KEY (`id`)\n" +
		") ENGINE=MyISAM DEFAULT CHARSET=utf8 AUTO_INCREMENT=1 ;\n"
}

func sqliteTagSchema(table string) string {
	return "CREATE TABLE IF NOT EXISTS \"" + table + "\" (\n" +
		"\t\"id\" INTEGER PRIMARY KEY AUTOINCREMENT,\n" +
		"\t\"name\" TEXT NOT NULL DEFAULT '',\n" +
		"\t\"count\" INTEGER NOT NULL DEFAULT 0\n" +
		");\n"
}

var (
	movieColumns = []string{"id", "name", "title", "slug", "year", "rating", "votes", "genres", "keywords", "plot"}
	tagColumns   = []string{"id", "name", "count"}
)

// SQLWriter renders a registry as SQL dump files: one movies table and one
// table each for the distinct genres and keywords with their occurrence counts.
type SQLWriter struct {
	// Dialect is DialectMySQL (default) or DialectSQLite.
	Dialect string
}

func (w SQLWriter) dialect() dialect {
	if d, ok := dialects[w.Dialect]; ok {
		return d
	}
	return dialects[DialectMySQL]
}

// Quote returns s as a single-quoted SQL string literal.
func (w SQLWriter) Quote(s string) string {
	return "'" + w.dialect().escape.Replace(s) + "'"
}

// WriteMovies writes the movies table ordered by identity key.
func (w SQLWriter) WriteMovies(out io.Writer, reg *movies.Registry) error {
	ids := reg.IDs()
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rec, _ := reg.Get(id)
		rows = append(rows, []string{
			"NULL",
			w.Quote(id),
			w.Quote(rec.Title),
			w.Quote(slug(id)),
			strconv.Itoa(rec.Year),
			strconv.FormatFloat(float64(rec.Rating), 'f', 1, 32),
			strconv.Itoa(rec.Votes),
			w.Quote(strings.Join(rec.Genres, ", ")),
			w.Quote(strings.Join(rec.Keywords, ", ")),
			w.Quote(rec.Plot),
		})
	}
	return w.writeTable(out, "movies", movieColumns, rows)
}

// WriteGenres writes the distinct genres ordered by name.
func (w SQLWriter) WriteGenres(out io.Writer, reg *movies.Registry) error {
	return w.writeTable(out, "genres", tagColumns, w.tagRows(CountGenres(reg)))
}

// WriteKeywords writes the distinct keywords ordered by name.
func (w SQLWriter) WriteKeywords(out io.Writer, reg *movies.Registry) error {
	return w.writeTable(out, "keywords", tagColumns, w.tagRows(CountKeywords(reg)))
}

func (w SQLWriter) tagRows(counts map[string]int) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		rows = append(rows, []string{"NULL", w.Quote(name), strconv.Itoa(counts[name])})
	}
	return rows
}

// writeTable writes the CREATE statement followed by one multi-row INSERT.
// An empty table gets the CREATE statement only.
func (w SQLWriter) writeTable(out io.Writer, table string, columns []string, rows [][]string) error {
	d := w.dialect()
	bw := bufio.NewWriter(out)
	bw.WriteString(d.schemas[table])
	if len(rows) > 0 {
		bw.WriteString("\nINSERT INTO ")
		bw.WriteString(d.ident(table))
		bw.WriteString(" (")
		for i, col := range columns {
			if i > 0 {
				bw.WriteString(", ")
			}
			bw.WriteString(d.ident(col))
		}
		bw.WriteString(") VALUES\n")
		for i, row := range rows {
			bw.WriteByte('(')
			bw.WriteString(strings.Join(row, ","))
			if i == len(rows)-1 {
				bw.WriteString(");\n")
			} else {
				bw.WriteString("),\n")
			}
		}
	}
	return bw.Flush()
}

// CountGenres counts genre occurrences over all records.
func CountGenres(reg *movies.Registry) map[string]int {
	return countTags(reg, func(rec *movies.MovieRecord) []string { return rec.Genres })
}

// CountKeywords counts keyword occurrences over all records.
func CountKeywords(reg *movies.Registry) map[string]int {
	return countTags(reg, func(rec *movies.MovieRecord) []string { return rec.Keywords })
}

func countTags(reg *movies.Registry, tags func(*movies.MovieRecord) []string) map[string]int {
	counts := make(map[string]int)
	reg.Range(func(_ string, rec *movies.MovieRecord) bool {
		for _, tag := range tags(rec) {
			counts[tag]++
		}
		return true
	})
	return counts
}
