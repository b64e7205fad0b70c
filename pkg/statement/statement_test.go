package statement

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	idef0errors "github.com/matzehuels/idef0/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Statement
		ignored []int
	}{
		{
			name:  "all predicates",
			input: "Sys is composed of A\nA receives In\nA produces Out\nA respects Rule\nA requires Tool\n",
			want: []Statement{
				{Subject: "Sys", Predicate: ComposedOf, Object: "A", Line: 1},
				{Subject: "A", Predicate: Receives, Object: "In", Line: 2},
				{Subject: "A", Predicate: Produces, Object: "Out", Line: 3},
				{Subject: "A", Predicate: Respects, Object: "Rule", Line: 4},
				{Subject: "A", Predicate: Requires, Object: "Tool", Line: 5},
			},
		},
		{
			name:  "multi word names and extra spaces",
			input: "  Cook   Food  receives   Raw Ingredients  ",
			want: []Statement{
				{Subject: "Cook Food", Predicate: Receives, Object: "Raw Ingredients", Line: 1},
			},
		},
		{
			name:  "first predicate wins",
			input: "Plan receives produces list",
			want: []Statement{
				{Subject: "Plan", Predicate: Receives, Object: "produces list", Line: 1},
			},
		},
		{
			name:  "composed of with irregular spacing",
			input: "Sys is  composed\tof A",
			want: []Statement{
				{Subject: "Sys", Predicate: ComposedOf, Object: "A", Line: 1},
			},
		},
		{
			name:    "unknown predicates are dropped",
			input:   "A consumes B\nA receives B\nnonsense\n",
			want:    []Statement{{Subject: "A", Predicate: Receives, Object: "B", Line: 2}},
			ignored: []int{1, 3},
		},
		{
			name:  "comments and blank lines",
			input: "# model\n\nA produces B\n   # indented comment\n",
			want:  []Statement{{Subject: "A", Predicate: Produces, Object: "B", Line: 3}},
		},
		{
			name:    "predicate without object",
			input:   "A receives",
			ignored: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, res.Statements); diff != "" {
				t.Errorf("Statements mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.ignored, res.Ignored); diff != "" {
				t.Errorf("Ignored mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePredicate(t *testing.T) {
	for p, text := range predicateText {
		got, ok := ParsePredicate(text)
		if !ok || got != p {
			t.Errorf("ParsePredicate(%q) = %v, %v; want %v", text, got, ok, p)
		}
		if p.String() != text {
			t.Errorf("%v.String() = %q, want %q", p, p.String(), text)
		}
	}
	if _, ok := ParsePredicate("Receives"); ok {
		t.Error("predicates are case sensitive")
	}
	if Predicate(0).String() != "unknown" {
		t.Errorf("zero predicate String() = %q", Predicate(0).String())
	}
}

func TestStatementString(t *testing.T) {
	s := Statement{Subject: "A", Predicate: ComposedOf, Object: "B"}
	if got := s.String(); got != "A is composed of B" {
		t.Errorf("String() = %q", got)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		candidates []string
	}{
		{"single", "S is composed of A\nS is composed of B\nA receives x", "S", nil},
		{"none", "A receives x", "", nil},
		{"several", "S is composed of A\nT is composed of B\nS is composed of C", "", []string{"S", "T"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Root(ParseString(tt.input).Statements)
			if tt.want != "" {
				if err != nil || got != tt.want {
					t.Fatalf("Root() = %q, %v; want %q", got, err, tt.want)
				}
				return
			}
			var ar *idef0errors.AmbiguousRootError
			if !errors.As(err, &ar) {
				t.Fatalf("Root() error = %v, want AmbiguousRootError", err)
			}
			if diff := cmp.Diff(tt.candidates, ar.Candidates); diff != "" {
				t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
			}
			if !idef0errors.Is(err, idef0errors.ErrCodeAmbiguousRoot) {
				t.Error("error should carry AMBIGUOUS_ROOT")
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParseReadError(t *testing.T) {
	_, err := Parse(failingReader{})
	if !idef0errors.Is(err, idef0errors.ErrCodeInvalidInput) {
		t.Errorf("Parse() error = %v, want INVALID_INPUT", err)
	}
}
