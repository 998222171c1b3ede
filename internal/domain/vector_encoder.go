package domain

import (
	"context"
)

// VectorEncoder maps texts to fixed-length semantic vectors, one per
// input text, index-aligned. Implementations must either embed every
// text or fail the whole call: a ragged result would break the
// positional alignment the rest of the pipeline relies on.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
