package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // texture decoders
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2/wav"
	"github.com/qmuntal/gltf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Fetcher retrieves and decodes a single asset. Implementations must be safe
// for concurrent use; the loader calls Fetch from worker goroutines.
type Fetcher interface {
	// Size reports the expected byte size of d, or 0 if unknown.
	Size(d Descriptor) int64
	// Fetch loads d, reporting bytes read through progress.
	Fetch(ctx context.Context, d Descriptor, progress func(n int64)) (Asset, error)
}

// FileFetcher reads assets from a directory tree.
type FileFetcher struct {
	Root string
}

// NewFileFetcher creates a fetcher rooted at root.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{Root: root}
}

func (f *FileFetcher) resolve(d Descriptor) string {
	if filepath.IsAbs(d.Path) {
		return d.Path
	}
	return filepath.Join(f.Root, filepath.FromSlash(d.Path))
}

// Size implements Fetcher.
func (f *FileFetcher) Size(d Descriptor) int64 {
	info, err := os.Stat(f.resolve(d))
	if err != nil {
		return 0
	}
	return info.Size()
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context, d Descriptor, progress func(n int64)) (Asset, error) {
	path := f.resolve(d)

	data, err := readAll(ctx, path, progress)
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindModel:
		return decodeModel(path, data)
	case KindTexture:
		return decodeTexture(data)
	case KindAudio:
		return decodeAudio(data)
	case KindVideo:
		if len(data) == 0 {
			return nil, fmt.Errorf("video %s is empty", d.Name)
		}
		return &Video{Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
}

func readAll(ctx context.Context, path string, progress func(n int64)) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := &countingReader{ctx: ctx, r: file, progress: progress}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// countingReader reports bytes as they are read and stops on cancellation.
type countingReader struct {
	ctx      context.Context
	r        io.Reader
	progress func(n int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := c.r.Read(p)
	if n > 0 && c.progress != nil {
		c.progress(int64(n))
	}
	return n, err
}

func decodeModel(path string, data []byte) (*Model, error) {
	// .gltf files reference sibling buffers and images by URI, so they are
	// opened from disk; .glb is self-contained.
	if strings.EqualFold(filepath.Ext(path), ".gltf") {
		doc, err := gltf.Open(path)
		if err != nil {
			return nil, fmt.Errorf("gltf open %q: %w", path, err)
		}
		return &Model{Doc: doc}, nil
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("glb decode %q: %w", path, err)
	}
	return &Model{Doc: doc}, nil
}

func decodeTexture(data []byte) (*Texture, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Texture{Image: img, Format: format}, nil
}

func decodeAudio(data []byte) (*Audio, error) {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	_ = streamer.Close()
	return &Audio{Data: data, Format: format}, nil
}
