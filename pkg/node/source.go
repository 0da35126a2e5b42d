package node

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceKind discriminates template source locations.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// Source identifies where a template document lives without binding callers
// to a particular loader.
type Source interface {
	Location() string
	Kind() SourceKind
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing at an on-disk template.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a template inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	data []byte
}

func (s bytesSource) Location() string { return "(inline)" }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

// SourceFromBytes wraps an already loaded template document.
func SourceFromBytes(data []byte) Source {
	return bytesSource{data: data}
}

// Loader reads template documents from Sources. The zero value reads files
// from the host filesystem; WithFS supplies the fs.FS backing SourceKindFS.
type Loader struct {
	fsys fs.FS
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithFS configures the filesystem used for SourceKindFS sources.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	loader := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(loader)
		}
	}
	return loader
}

// Load reads and decodes the template behind a Source.
func (l *Loader) Load(ctx context.Context, src Source) (*Node, error) {
	if src == nil {
		return nil, fmt.Errorf("node: source is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.read(src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func (l *Loader) read(src Source) ([]byte, error) {
	switch src.Kind() {
	case SourceKindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("node: read template %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindFS:
		if l.fsys == nil {
			return nil, fmt.Errorf("node: fs source %q requires WithFS", src.Location())
		}
		data, err := fs.ReadFile(l.fsys, src.Location())
		if err != nil {
			return nil, fmt.Errorf("node: read template %s: %w", src.Location(), err)
		}
		return data, nil
	case SourceKindBytes:
		return src.(bytesSource).data, nil
	default:
		return nil, fmt.Errorf("node: unsupported source kind %q", src.Kind())
	}
}
