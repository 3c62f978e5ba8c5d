package assets

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/castle-showcase/pkg/math"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// wavBytes builds a short 16-bit mono PCM clip.
func wavBytes(samples int) []byte {
	const rate = 22050
	dataLen := samples * 2
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}

const sceneGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 1]}],
  "nodes": [
    {"name": "mirror", "translation": [6, 2, -3]},
    {"name": "pole"}
  ]
}`

func TestFileFetcherDecodesEachKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "textures/sky.png", pngBytes(t))
	writeFile(t, dir, "audio/click.wav", wavBytes(64))
	writeFile(t, dir, "models/castle.gltf", []byte(sceneGLTF))
	writeFile(t, dir, "video/intro.mp4", []byte("not really a video"))

	f := NewFileFetcher(dir)
	ctx := context.Background()

	var read int64
	tex, err := f.Fetch(ctx, Descriptor{Kind: KindTexture, Name: "sky", Path: "textures/sky.png"}, func(n int64) { read += n })
	require.NoError(t, err)
	assert.Equal(t, "png", tex.(*Texture).Format)
	assert.Equal(t, f.Size(Descriptor{Path: "textures/sky.png"}), read)

	au, err := f.Fetch(ctx, Descriptor{Kind: KindAudio, Name: "click", Path: "audio/click.wav"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 22050, int(au.(*Audio).Format.SampleRate))

	vid, err := f.Fetch(ctx, Descriptor{Kind: KindVideo, Name: "intro", Path: "video/intro.mp4"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, vid.(*Video).Data)

	a, err := f.Fetch(ctx, Descriptor{Kind: KindModel, Name: "castle", Path: "models/castle.gltf"}, nil)
	require.NoError(t, err)
	model := a.(*Model)

	pos, ok := model.NodeTranslation("mirror")
	require.True(t, ok)
	assert.Equal(t, math.V3(6, 2, -3), pos)

	_, ok = model.Node("atm")
	assert.False(t, ok, "missing nodes are reported, not fatal")
}

func TestFileFetcherErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "textures/bad.png", []byte("garbage"))
	f := NewFileFetcher(dir)

	_, err := f.Fetch(context.Background(), Descriptor{Kind: KindTexture, Name: "bad", Path: "textures/bad.png"}, nil)
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), Descriptor{Kind: KindModel, Name: "gone", Path: "models/gone.glb"}, nil)
	assert.Error(t, err)
	assert.Zero(t, f.Size(Descriptor{Path: "models/gone.glb"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	writeFile(t, dir, "video/clip.mp4", []byte("bytes"))
	_, err = f.Fetch(ctx, Descriptor{Kind: KindVideo, Name: "clip", Path: "video/clip.mp4"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
