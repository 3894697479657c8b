// Package ctm provides a dense, column-major matrix container for Go with
// value semantics and zero-copy views.
//
// ctm keeps element storage and a derived column table in lockstep, and lets
// callers look at that storage through lightweight views: a transpose or a
// contiguous column range without copying a single element.
//
// # Features
//
// - Generic element types: every Go integer and float kind, derived types included
// - Zero-copy transpose and column-range views with stale-view detection
// - Element-wise, scalar and product arithmetic, optionally split across CPU cores
// - Non-fatal diagnostics routed through a single warning channel
// - gonum interop and heat-map rendering via gonum/plot
//
// # Installation
//
//	go get github.com/YuminosukeSato/ctm
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/ctm/matrix"
//	)
//
//	func main() {
//	    // column-major fill: a(0,0)=1, a(1,0)=2, a(0,1)=3
//	    a, err := matrix.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // A·Aᵀ without materializing the transpose
//	    gram, err := matrix.MulView(a, a.T())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(gram)
//	}
//
// # Packages
//
//   - matrix: Matrix, View, arithmetic, conversion and gonum interop
//   - render: heat-map plots of matrices and views
//   - core/parallel: column-range work splitting
//   - pkg/errors: typed errors and the warning channel
//   - pkg/log: structured logging (zerolog by default, slog optional)
//
// # Views and storage generations
//
// Every storage replacement (Assign, Reshape, Release) advances the matrix's
// generation. A view remembers the generation it was cut from and any read
// through it after a replacement fails with errors.ErrStaleView:
//
//	v := a.T()
//	a.Assign(b)
//	_, err := v.At(0, 0) // errors.Is(err, errors.ErrStaleView)
//
// Set writes in place and keeps views valid.
//
// # Configuration
//
// Process-wide behavior is set with functional options:
//
//	defer matrix.SetConfig(matrix.Configure(
//	    matrix.WithBoundsPolicy(matrix.BoundsClamp),
//	    matrix.WithParallelThreshold(1<<12),
//	))
//
// # License
//
// ctm is released under the MIT License.
package ctm
