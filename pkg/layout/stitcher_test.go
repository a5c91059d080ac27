package layout

import (
	"reflect"
	"testing"
)

func TestJoinLines(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{[]string{"exam-", "ple text"}, "example text"},
		{[]string{"hello", "world"}, "hello world"},
		{[]string{"Smith John, car-", "penter, h 12 Elm"}, "Smith John, carpenter, h 12 Elm"},
		{[]string{"one", "two-", "three", "four"}, "one twothree four"},
		{[]string{"alone"}, "alone"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := JoinLines(tt.parts); got != tt.want {
			t.Errorf("JoinLines(%q) = %q; want %q", tt.parts, got, tt.want)
		}
	}
}

func TestStitch(t *testing.T) {
	texts := []string{"exam-", "ple text", "classified alone", "stray header", "hello", "world"}
	columnIndex := []int{0, NoColumn, 0, NoColumn, 1, NoColumn}
	previous := []int{NoLink, 0, NoLink, NoLink, NoLink, 4}
	next := []int{1, NoLink, NoLink, NoLink, 5, NoLink}

	got := Stitch(texts, columnIndex, previous, next)
	want := []string{"example text", "", "classified alone", "", "hello world", ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestChain(t *testing.T) {
	next := []int{2, NoLink, 1, NoLink}
	if got := Chain(next, 0); !reflect.DeepEqual(got, []int{0, 2, 1}) {
		t.Errorf("Expected chain [0 2 1], got %v", got)
	}
	if got := Chain(next, 3); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("Expected chain [3], got %v", got)
	}
}

func TestChain_StopsOnCycle(t *testing.T) {
	next := []int{1, 0}
	if got := Chain(next, 0); len(got) > len(next)+1 {
		t.Errorf("Expected a bounded chain, got %v", got)
	}
}
