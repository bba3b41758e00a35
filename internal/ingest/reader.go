package ingest

import (
	"context"

	"github.com/sells-group/transport-report/internal/model"
)

// Reader loads and normalizes uploads with a fixed configuration.
type Reader struct {
	normalizer *Normalizer
	opts       LoadOptions
}

// NewReader creates a Reader. A nil normalizer uses DefaultColumns only.
func NewReader(n *Normalizer, opts LoadOptions) *Reader {
	if n == nil {
		n = NewNormalizer(nil)
	}
	return &Reader{normalizer: n, opts: opts}
}

// Read parses and normalizes one uploaded file. The only error a caller
// should expect for bad input is *ParseError.
func (r *Reader) Read(ctx context.Context, data []byte, name string) (*model.Table, error) {
	raw, err := Load(ctx, data, name, r.opts)
	if err != nil {
		return nil, err
	}
	return r.normalizer.Normalize(raw), nil
}
