package render

import "errors"

var (
	// ErrUnknownFormat indicates an output format with no renderer.
	ErrUnknownFormat = errors.New("unknown render format")
	// ErrUnknownVariant indicates a report variant with no layout.
	ErrUnknownVariant = errors.New("unknown report variant")
	// ErrConvert indicates the Markdown to HTML conversion failed.
	ErrConvert = errors.New("markdown conversion failed")
)
