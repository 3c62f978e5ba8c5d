package assets

import (
	"image"

	"github.com/gopxl/beep/v2"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/castle-showcase/pkg/math"
)

// Asset is a decoded resource.
type Asset interface {
	Kind() Kind
}

// Model is a decoded GLTF document.
type Model struct {
	Doc *gltf.Document
}

// Kind implements Asset.
func (*Model) Kind() Kind { return KindModel }

// Node returns the first node with the given name. Callers must handle a
// missing node; scene files are edited independently of the code.
func (m *Model) Node(name string) (*gltf.Node, bool) {
	if m == nil || m.Doc == nil {
		return nil, false
	}
	for _, n := range m.Doc.Nodes {
		if n != nil && n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// NodeTranslation returns the local translation of a named node.
func (m *Model) NodeTranslation(name string) (math.Vec3, bool) {
	n, ok := m.Node(name)
	if !ok {
		return math.Vec3{}, false
	}
	t := n.Translation
	return math.V3(float32(t[0]), float32(t[1]), float32(t[2])), true
}

// Texture is a decoded image.
type Texture struct {
	Image  image.Image
	Format string
}

// Kind implements Asset.
func (*Texture) Kind() Kind { return KindTexture }

// Audio holds validated WAV data. Playback decodes it again per voice.
type Audio struct {
	Data   []byte
	Format beep.Format
}

// Kind implements Asset.
func (*Audio) Kind() Kind { return KindAudio }

// Video holds raw container bytes; decoding is left to the player.
type Video struct {
	Data []byte
}

// Kind implements Asset.
func (*Video) Kind() Kind { return KindVideo }
