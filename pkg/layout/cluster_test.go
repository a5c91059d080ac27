package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestCkmeans(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		k      int
		want   [][]int
	}{
		{
			name:   "two groups",
			values: []int{10, 1, 11, 2, 1, 10, 2},
			k:      2,
			want:   [][]int{{1, 1, 2, 2}, {10, 10, 11}},
		},
		{
			name:   "k clamped to distinct values",
			values: []int{5, 9, 5, 5},
			k:      4,
			want:   [][]int{{5, 5, 5}, {9}},
		},
		{
			name:   "single value",
			values: []int{3, 3, 3},
			k:      3,
			want:   [][]int{{3, 3, 3}},
		},
		{
			name:   "three groups",
			values: []int{48, 50, 50, 52, 300, 305, 700, 702, 702},
			k:      3,
			want:   [][]int{{48, 50, 50, 52}, {300, 305}, {700, 702, 702}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ckmeans(tt.values, tt.k)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCkmeans_InvalidClusterCount(t *testing.T) {
	if _, err := Ckmeans([]int{1, 2}, 0); !errors.Is(err, ErrNoClusters) {
		t.Errorf("Expected ErrNoClusters, got %v", err)
	}
}

func TestCkmeans_DoesNotModifyInput(t *testing.T) {
	values := []int{9, 1, 5}
	if _, err := Ckmeans(values, 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(values, []int{9, 1, 5}) {
		t.Errorf("Expected input to be untouched, got %v", values)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{[]int{1, 5, 5}, 5},
		{[]int{4, 2, 2, 4, 7}, 2},
		{[]int{9}, 9},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := Mode(tt.values); got != tt.want {
			t.Errorf("Mode(%v) = %d; want %d", tt.values, got, tt.want)
		}
	}
}
