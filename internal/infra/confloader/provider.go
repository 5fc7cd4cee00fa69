package confloader

import (
	"errors"
	"io/fs"
	"os"

	"github.com/knadh/koanf/v2"
)

// ErrReadBytesNotSupported is returned by ReadBytes on layer providers,
// which only produce maps.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported, use Read() instead")

// mapProvider is a koanf provider over a fixed layer.
type mapProvider map[string]any

var _ koanf.Provider = mapProvider(nil)

// ReadBytes is not supported.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the layer.
func (m mapProvider) Read() (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	return m, nil
}

// fileProvider reads a configuration file through a load function. The
// file may disappear between the existence check and the read: a vanished
// default file then reads as an empty layer, any other as a
// FileNotFoundError.
type fileProvider struct {
	path   string
	source PathSource
	load   func(path string) (map[string]any, error)
}

var _ koanf.Provider = (*fileProvider)(nil)

// ReadBytes is not supported.
func (p *fileProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read loads the file. Other load errors are returned unchanged.
func (p *fileProvider) Read() (map[string]any, error) {
	m, err := p.load(p.path)
	if err != nil {
		if _, serr := os.Stat(p.path); errors.Is(serr, fs.ErrNotExist) {
			if p.source == SourceDefault {
				return map[string]any{}, nil
			}
			return nil, &FileNotFoundError{Path: p.path, Source: p.source, Err: serr}
		}
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// layer is a named source in precedence order.
type layer struct {
	name     string
	provider koanf.Provider
}
