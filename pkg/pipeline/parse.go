package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/idef0/pkg/statement"
)

// Parse reads the model text into statements. Lines without a known
// predicate are reported in the result, not as errors.
func Parse(ctx context.Context, input []byte) (statement.Result, error) {
	if err := ctx.Err(); err != nil {
		return statement.Result{}, err
	}
	return statement.Parse(bytes.NewReader(input))
}
