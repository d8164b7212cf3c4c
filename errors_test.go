package cardforge

import (
	"errors"
	"fmt"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		list List
		want error
	}{
		{"empty", nil, nil},
		{"valid", threeStepList(), nil},
		{"gap", List{{ID: 1}, {ID: 3}}, ErrNotContiguous},
		{"starts at zero", List{{ID: 0}}, ErrNotContiguous},
		{"dangling", List{{ID: 1, Prerequisites: []int{2}}}, ErrDanglingPrerequisite},
		{"negative reference", List{{ID: 1, Prerequisites: []int{-1}}}, ErrDanglingPrerequisite},
		{"self reference is allowed", List{{ID: 1, Prerequisites: []int{1}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.list)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Check() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Check() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIsIntegrityError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"not contiguous", ErrNotContiguous, true},
		{"wrapped dangling", fmt.Errorf("load: %w", ErrDanglingPrerequisite), true},
		{"other error", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIntegrityError(tt.err); got != tt.expect {
				t.Errorf("IsIntegrityError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}
