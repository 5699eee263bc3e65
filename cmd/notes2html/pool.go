package main

import (
	"context"
	"fmt"

	"github.com/lsy641/notes2html"
)

// CLIConverter is the conversion surface the CLI needs.
type CLIConverter interface {
	Convert(ctx context.Context, input notes2html.Input) (*notes2html.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*notes2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// poolAdapter exposes a notes2html.ConverterPool as a Pool.
type poolAdapter struct {
	pool *notes2html.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics if conv did not come from Acquire.
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*notes2html.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
