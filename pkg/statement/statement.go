// Package statement parses IDEF0 model text into subject–predicate–object
// statements.
//
// A model is plain text with one statement per line:
//
//	Operate Restaurant is composed of Cook Food
//	Operate Restaurant receives Hungry Customer
//	Cook Food receives Order
//	Cook Food produces Meal
//	Cook Food respects Health Code
//	Cook Food requires Chef
//
// The five predicates form a closed set resolved once while parsing; callers
// switch on [Predicate] values and never compare predicate strings. Lines that
// carry none of the predicates are dropped without error and reported in
// [Result.Ignored]. Blank lines and lines starting with '#' are skipped.
package statement

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/idef0/pkg/errors"
)

// Predicate is the relation a statement expresses.
type Predicate int

const (
	// ComposedOf names the root process ("X is composed of Y").
	ComposedOf Predicate = iota + 1
	// Receives declares an input (left side).
	Receives
	// Produces declares an output (right side).
	Produces
	// Respects declares a control or guidance (top side).
	Respects
	// Requires declares a mechanism (bottom side).
	Requires
)

var predicateText = map[Predicate]string{
	ComposedOf: "is composed of",
	Receives:   "receives",
	Produces:   "produces",
	Respects:   "respects",
	Requires:   "requires",
}

// String returns the predicate as written in model text.
func (p Predicate) String() string {
	if s, ok := predicateText[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePredicate resolves the textual form of a predicate. Runs of
// whitespace inside "is composed of" are accepted.
func ParsePredicate(s string) (Predicate, bool) {
	norm := strings.Join(strings.Fields(s), " ")
	for p, text := range predicateText {
		if text == norm {
			return p, true
		}
	}
	return 0, false
}

// Statement is one parsed line of the model.
type Statement struct {
	Subject   string
	Predicate Predicate
	Object    string
	Line      int // 1-based source line, 0 when built in code
}

// String renders the statement back into model syntax.
func (s Statement) String() string {
	return s.Subject + " " + s.Predicate.String() + " " + s.Object
}

// Result holds the statements recognised in a model and the line numbers
// that were dropped because they carry no known predicate.
type Result struct {
	Statements []Statement
	Ignored    []int
}

var statementRe = regexp.MustCompile(`^(.+?)\s+(is\s+composed\s+of|receives|produces|respects|requires)\s+(.+)$`)

// maxLineLength bounds a single model line.
const maxLineLength = 1 << 20

// Parse reads the whole model from r. The only errors it returns come from
// reading r; unrecognised lines are never an error.
func Parse(r io.Reader) (Result, error) {
	var res Result
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, ok := parseLine(line)
		if !ok {
			res.Ignored = append(res.Ignored, n)
			continue
		}
		st.Line = n
		res.Statements = append(res.Statements, st)
	}
	if err := sc.Err(); err != nil {
		return res, errors.Wrap(errors.ErrCodeInvalidInput, err, "read model")
	}
	return res, nil
}

// ParseString parses a model held in memory.
func ParseString(s string) Result {
	res, _ := Parse(strings.NewReader(s))
	return res
}

func parseLine(line string) (Statement, bool) {
	m := statementRe.FindStringSubmatch(line)
	if m == nil {
		return Statement{}, false
	}
	pred, ok := ParsePredicate(m[2])
	if !ok {
		return Statement{}, false
	}
	return Statement{
		Subject:   collapse(m[1]),
		Predicate: pred,
		Object:    collapse(m[3]),
	}, true
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Root returns the single subject of all ComposedOf statements. It fails with
// an [errors.AmbiguousRootError] listing every candidate, in order of first
// appearance, when there is not exactly one.
func Root(stmts []Statement) (string, error) {
	var candidates []string
	seen := make(map[string]bool)
	for _, s := range stmts {
		if s.Predicate != ComposedOf || seen[s.Subject] {
			continue
		}
		seen[s.Subject] = true
		candidates = append(candidates, s.Subject)
	}
	if len(candidates) != 1 {
		return "", &errors.AmbiguousRootError{Candidates: candidates}
	}
	return candidates[0], nil
}
