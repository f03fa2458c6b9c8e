package solverlog

import (
	"fmt"
	"strings"
)

// ErrorList holds one error per case directory, nil for the cases that
// succeeded.
type ErrorList []error

func (e ErrorList) Error() string {
	var strs []string
	for i, err := range e {
		if err != nil {
			strs = append(strs, fmt.Sprintf("case %d: %s", i, err.Error()))
		}
	}
	return strings.Join(strs, "; ")
}

// AllNil reports whether no case failed.
func (e ErrorList) AllNil() bool {
	for _, err := range e {
		if err != nil {
			return false
		}
	}
	return true
}
