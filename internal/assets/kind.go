package assets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a manifest names an unsupported asset kind.
var ErrUnknownKind = errors.New("unknown asset kind")

// Kind is the type of a registered asset.
type Kind string

const (
	KindModel   Kind = "model"
	KindTexture Kind = "texture"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
)

// AllKinds lists every supported kind in load order.
var AllKinds = []Kind{KindModel, KindTexture, KindAudio, KindVideo}

// ParseKind converts a manifest string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindModel, KindTexture, KindVideo, KindAudio:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}
