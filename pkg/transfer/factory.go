package transfer

import (
	"context"
	"fmt"
)

// Constructor is a function that creates a downloader instance
type Constructor func(ctx context.Context, cfg Config) (Downloader, error)

var registry = make(map[string]Constructor)

// RegisterDownloader registers a downloader constructor for a mode
func RegisterDownloader(mode string, constructor Constructor) {
	registry[mode] = constructor
}

// Factory creates downloaders from configuration
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create instantiates the downloader selected by cfg.Mode
func (f *Factory) Create(ctx context.Context, cfg Config) (Downloader, error) {
	constructor, ok := registry[cfg.Mode]
	if !ok {
		return nil, WrapError(ErrConfig, "create downloader", fmt.Errorf("unknown downloader mode: %q", cfg.Mode))
	}

	d, err := constructor(ctx, cfg)
	if err != nil {
		return nil, WrapError(ErrConfig, "create "+cfg.Mode+" downloader", err)
	}
	return d, nil
}
