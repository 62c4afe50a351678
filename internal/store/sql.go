package store

import (
	"encoding/json"
	"strings"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

var keywordEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

func unmarshalList[T any](data []byte) []T {
	items := []T{}
	if len(data) == 0 {
		return items
	}
	_ = json.Unmarshal(data, &items)
	return items
}

// MatchesKeyword reports whether keyword occurs, ignoring case, in the job's
// title, description or location. An empty keyword matches every job.
func MatchesKeyword(job types.Job, keyword string) bool {
	if keyword == "" {
		return true
	}
	needle := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(job.Title), needle) ||
		strings.Contains(strings.ToLower(job.Description), needle) ||
		strings.Contains(strings.ToLower(job.Location), needle)
}
