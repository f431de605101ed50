package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes the LIKE metacharacters in a search query so it
// matches as a literal substring. The search queries pair it with ESCAPE '\'.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

// encodeTags serializes an ordered tag set into the single text column used
// for storage. An empty or nil set is stored as NULL.
func encodeTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode tags: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeTags parses the stored text column back into an ordered tag set.
// NULL yields a nil slice. A malformed stored value is a data-corruption
// condition and surfaces as an error, never as an empty set.
func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("decode tags %q: %w", raw.String, err)
	}
	return tags, nil
}
