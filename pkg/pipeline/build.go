package pipeline

import (
	"context"

	"github.com/matzehuels/idef0/pkg/idef0"
	"github.com/matzehuels/idef0/pkg/statement"
)

// Build resolves the root process and lays out the diagram.
func Build(ctx context.Context, stmts []statement.Statement, style idef0.Style) (*idef0.Diagram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return idef0.FromStatements(stmts, idef0.WithStyle(style))
}
