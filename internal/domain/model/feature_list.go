package model

import (
	"fmt"
	"strings"

	"github.com/bibbank/loanrisk/internal/domain/valueobject"
)

// FeatureList is the reference feature list: the ordered column schema the
// scaler and classifier were fit against. It is immutable once built.
type FeatureList struct {
	index map[string]int
	names []string
}

// NewFeatureList validates and copies names into a FeatureList.
// The list must be non-empty and every name must be unique and non-blank.
func NewFeatureList(names []string) (FeatureList, error) {
	if len(names) == 0 {
		return FeatureList{}, fmt.Errorf("feature list must not be empty")
	}

	index := make(map[string]int, len(names))
	copied := make([]string, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return FeatureList{}, fmt.Errorf("feature name at position %d is blank", i)
		}
		if prev, dup := index[name]; dup {
			return FeatureList{}, fmt.Errorf("duplicate feature name %q at positions %d and %d", name, prev, i)
		}
		index[name] = i
		copied[i] = name
	}

	return FeatureList{names: copied, index: index}, nil
}

// Len returns the number of columns.
func (f FeatureList) Len() int {
	return len(f.names)
}

// At returns the i-th column name.
func (f FeatureList) At(i int) string {
	return f.names[i]
}

// Names returns a copy of the ordered column names.
func (f FeatureList) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Contains reports whether name is a column of the list.
func (f FeatureList) Contains(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Index returns the position of name.
func (f FeatureList) Index(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// CategoryColumns returns the one-hot purpose columns in reference order.
func (f FeatureList) CategoryColumns() []string {
	var cols []string
	for _, name := range f.names {
		if IsCategoryColumn(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// Equal reports whether both lists hold the same names in the same order.
func (f FeatureList) Equal(other []string) bool {
	if len(f.names) != len(other) {
		return false
	}
	for i, name := range f.names {
		if other[i] != name {
			return false
		}
	}
	return true
}

// IsCategoryColumn reports whether name denotes a one-hot purpose column.
func IsCategoryColumn(name string) bool {
	return strings.HasPrefix(name, valueobject.PurposeColumnPrefix)
}

// FeatureVector is an assembled or scaled row, order-matched to a FeatureList.
type FeatureVector []float64

// Width returns the number of columns in the vector.
func (v FeatureVector) Width() int {
	return len(v)
}

// Clone returns an independent copy.
func (v FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(v))
	copy(out, v)
	return out
}
