package keys

import (
	"fmt"
	"strings"

	"github.com/agentstation/csvsync/pkg/errors"
	"github.com/agentstation/csvsync/pkg/tabular"
)

// DuplicatePolicy decides which record represents a key that occurs more
// than once in the same file.
type DuplicatePolicy string

const (
	// DuplicatesLast lets the last record with a key win.
	DuplicatesLast DuplicatePolicy = "last"
	// DuplicatesFirst lets the first record with a key win.
	DuplicatesFirst DuplicatePolicy = "first"
	// DuplicatesReject fails the run when any key repeats.
	DuplicatesReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy validates a policy name. The empty string selects
// DuplicatesLast.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DuplicatesLast, nil
	case DuplicatesLast, DuplicatesFirst, DuplicatesReject:
		return p, nil
	default:
		return "", errors.NewValidationError("duplicates", s, fmt.Sprintf("unknown policy %q: must be one of last, first, reject", s))
	}
}

// Duplicate describes a key held by several records of one file.
type Duplicate struct {
	Key  string `json:"key" yaml:"key"`
	Rows []int  `json:"rows" yaml:"rows"` // record positions, 0-based
}

// Index maps normalized keys to record positions of one file.
type Index struct {
	order      []string
	rows       map[string]int
	all        map[string][]int
	blank      int
	Duplicates []Duplicate
}

// NewIndex indexes records by the normalized value of column. Records whose
// key normalizes to "" are counted but not indexed. Under DuplicatesReject a
// repeated key returns a *errors.DuplicateError.
func NewIndex(name string, records []tabular.Record, column string, cfg Config, policy DuplicatePolicy) (*Index, error) {
	idx := &Index{
		rows: make(map[string]int, len(records)),
		all:  make(map[string][]int, len(records)),
	}
	for i, rec := range records {
		k := Of(rec, column, cfg)
		if k == "" {
			idx.blank++
			continue
		}
		if _, seen := idx.all[k]; !seen {
			idx.order = append(idx.order, k)
		}
		idx.all[k] = append(idx.all[k], i)
	}

	var dupKeys []string
	for _, k := range idx.order {
		positions := idx.all[k]
		winner := positions[len(positions)-1]
		if policy == DuplicatesFirst {
			winner = positions[0]
		}
		idx.rows[k] = winner
		if len(positions) > 1 {
			idx.Duplicates = append(idx.Duplicates, Duplicate{Key: k, Rows: positions})
			dupKeys = append(dupKeys, k)
		}
	}

	if policy == DuplicatesReject && len(dupKeys) > 0 {
		return nil, errors.NewDuplicateError(name, dupKeys)
	}
	return idx, nil
}

// Lookup returns the position of the record that represents key.
func (x *Index) Lookup(key string) (int, bool) {
	i, ok := x.rows[key]
	return i, ok
}

// Has reports whether key is indexed.
func (x *Index) Has(key string) bool {
	_, ok := x.rows[key]
	return ok
}

// Keys returns the indexed keys in first-seen order.
func (x *Index) Keys() []string {
	return x.order
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	return len(x.order)
}

// Blank returns how many records had no usable key.
func (x *Index) Blank() int {
	return x.blank
}
