package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CollectionJobs         = "jobs"
	CollectionResumes      = "resumes"
	CollectionApplications = "applications"
)

// Record is a single untyped row of a collection.
type Record map[string]any

// Query selects records by field equality and orders them by one field.
type Query struct {
	Where   map[string]any
	OrderBy string
	Desc    bool
	// Limit caps the number of returned records. Zero means no limit.
	Limit int
}

// Store is the record store the application reads jobs and résumés from.
type Store interface {
	Find(ctx context.Context, collection string, q Query) ([]Record, error)
}

// FileStore serves collections from JSON or YAML files holding a list of objects.
type FileStore struct {
	paths map[string]string
}

// NewFileStore maps collection names to file paths. Empty paths are skipped.
func NewFileStore(paths map[string]string) *FileStore {
	cleaned := make(map[string]string, len(paths))
	for collection, path := range paths {
		if path = strings.TrimSpace(path); path != "" {
			cleaned[collection] = path
		}
	}
	return &FileStore{paths: cleaned}
}

// Find loads the collection file and applies the query. A collection without
// a configured file has no records.
func (s *FileStore) Find(ctx context.Context, collection string, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := s.paths[collection]
	if !ok {
		return []Record{}, nil
	}

	all, err := readRecords(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s collection: %w", collection, err)
	}

	return Apply(all, q), nil
}

// Apply filters, orders and limits records in memory.
func Apply(all []Record, q Query) []Record {
	found := make([]Record, 0, len(all))
	for _, rec := range all {
		if rec.matches(q.Where) {
			found = append(found, rec)
		}
	}

	if q.OrderBy != "" {
		slices.SortStableFunc(found, func(a, b Record) int {
			av, bv := a[q.OrderBy], b[q.OrderBy]
			if av == nil || bv == nil {
				return compareValues(av, bv)
			}
			c := compareValues(av, bv)
			if q.Desc {
				return -c
			}
			return c
		})
	}

	if q.Limit > 0 && len(found) > q.Limit {
		found = found[:q.Limit]
	}

	return found
}

func readRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported file format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		records = append(records, Record(item))
	}

	return records, nil
}

func (r Record) matches(where map[string]any) bool {
	for field, want := range where {
		got, ok := r[field]
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}
	return true
}

// valuesEqual compares numbers numerically. When either side is a string both
// sides are compared by their string form, so an id given as "42" finds 42.
func valuesEqual(a, b any) bool {
	_, aString := a.(string)
	_, bString := b.(string)
	if aString || bString {
		return a != nil && b != nil && valueAsString(a) == valueAsString(b)
	}

	if fa, ok := asFloat(a); ok {
		fb, ok := asFloat(b)
		return ok && fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders numbers numerically and everything else by its string
// form. Missing values sort last in both directions.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
