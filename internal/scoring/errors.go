package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput   = errors.New("invalid answer set")
	ErrTableIntegrity = errors.New("scoring table integrity violation")
)

// InvalidInputError describes why an answer set was rejected.
// Every offending question id is reported, not only the first one.
type InvalidInputError struct {
	Missing       []int          `json:"missing,omitempty"`
	Unknown       []int          `json:"unknown,omitempty"`
	Duplicate     []int          `json:"duplicate,omitempty"`
	InvalidLabels map[int]string `json:"invalidLabels,omitempty"`
}

func (e *InvalidInputError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing answers for questions %v", e.Missing))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown questions %v", e.Unknown))
	}
	if len(e.Duplicate) > 0 {
		parts = append(parts, fmt.Sprintf("questions answered more than once %v", e.Duplicate))
	}
	if len(e.InvalidLabels) > 0 {
		ids := make([]int, 0, len(e.InvalidLabels))
		for id := range e.InvalidLabels {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		labels := make([]string, len(ids))
		for n, id := range ids {
			labels[n] = fmt.Sprintf("%d=%q", id, e.InvalidLabels[id])
		}
		parts = append(parts, "invalid labels "+strings.Join(labels, ", "))
	}
	if len(parts) == 0 {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *InvalidInputError) empty() bool {
	return len(e.Missing) == 0 && len(e.Unknown) == 0 && len(e.Duplicate) == 0 && len(e.InvalidLabels) == 0
}
