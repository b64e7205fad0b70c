package idef0

import "github.com/matzehuels/idef0/pkg/statement"

// Build creates a diagram, lets configure declare its boxes and flows, and
// runs the build pipeline. The result is laid out and ready to render.
func Build(name string, configure func(*Diagram), opts ...Option) *Diagram {
	d := New(name, opts...)
	if configure != nil {
		configure(d)
	}
	d.SortBoxes()
	d.CreateLines()
	d.SortAnchors()
	d.Layout()
	return d
}

// FromStatements builds the diagram described by stmts. The single subject
// of the "is composed of" statements names the diagram; flows whose subject
// is the diagram go on its boundary and all others on the box named by the
// subject. It fails only when the root process is ambiguous.
func FromStatements(stmts []statement.Statement, opts ...Option) (*Diagram, error) {
	root, err := statement.Root(stmts)
	if err != nil {
		return nil, err
	}
	return Build(root, func(d *Diagram) {
		for _, s := range stmts {
			if _, ok := predicateSide(s.Predicate); !ok {
				continue
			}
			if s.Subject == d.Name() {
				d.Apply(s.Predicate, s.Object)
				continue
			}
			d.Box(s.Subject, func(b *Builder) { b.Apply(s.Predicate, s.Object) })
		}
	}, opts...), nil
}
