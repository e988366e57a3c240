// Package seqtree is the public entry point for growing sequence trees.
//
// A generator owns one background worker. Requests are answered asynchronously and in
// order; see contracts.TreeGenerator.
package seqtree

import (
	"github.com/leandrodaf/seqtree/internal/options"
	"github.com/leandrodaf/seqtree/internal/worker"
	"github.com/leandrodaf/seqtree/sdk/contracts"
)

// NewGenerator starts a generation worker configured by opts.
//
// Returns:
//   - contracts.TreeGenerator: the running worker. Call Stop when done.
//   - error: if an option value is invalid.
func NewGenerator(opts ...contracts.Option) (contracts.TreeGenerator, error) {
	o, err := options.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return worker.New(&o), nil
}
