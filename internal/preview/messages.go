// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package preview

import (
	"bytes"
	"encoding/json"

	"github.com/gogpu/paving"
	"github.com/gogpu/paving/internal/imageio"
)

// Message types exchanged over the websocket.
const (
	TypeFrame  = "frame"
	TypeParams = "params"
	TypeError  = "error"
)

// FrameMessage carries one canvas version to the browser. PNG is base64
// encoded by encoding/json.
type FrameMessage struct {
	Type    string `json:"type"`
	Version uint64 `json:"version"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	PNG     []byte `json:"png"`
}

// ErrorMessage reports a rejected client message.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ClientMessage is what the browser sends. Params is decoded over the
// session's current parameters, so partial objects only change the
// fields they name.
type ClientMessage struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Binding is the JSON view of a paving.TextureBinding.
type Binding struct {
	WrapS           string     `json:"wrapS"`
	WrapT           string     `json:"wrapT"`
	Repeat          [2]float64 `json:"repeat"`
	Offset          [2]float64 `json:"offset"`
	Rotation        float64    `json:"rotation"`
	Center          [2]float64 `json:"center"`
	GenerateMipmaps bool       `json:"generateMipmaps"`
	NeedsUpdate     bool       `json:"needsUpdate"`
	Version         uint64     `json:"version"`
}

func bindingOf(b paving.TextureBinding) Binding {
	return Binding{
		WrapS:           b.WrapS.String(),
		WrapT:           b.WrapT.String(),
		Repeat:          [2]float64{b.Repeat.X, b.Repeat.Y},
		Offset:          [2]float64{b.Offset.X, b.Offset.Y},
		Rotation:        b.Rotation,
		Center:          [2]float64{b.Center.X, b.Center.Y},
		GenerateMipmaps: b.GenerateMipmaps,
		NeedsUpdate:     b.NeedsUpdate,
		Version:         b.Version,
	}
}

// encodedFrame is a canvas version encoded as PNG.
type encodedFrame struct {
	version       uint64
	width, height int
	png           []byte
}

// frame returns the current canvas as PNG, encoding each version once.
func (s *Server) frame() (encodedFrame, error) {
	img, version := s.session.Snapshot()
	return s.frames.GetOrCreate(version, func() (encodedFrame, error) {
		var buf bytes.Buffer
		if err := imageio.EncodePNG(&buf, img); err != nil {
			return encodedFrame{}, err
		}
		return encodedFrame{
			version: version,
			width:   img.Rect.Dx(),
			height:  img.Rect.Dy(),
			png:     buf.Bytes(),
		}, nil
	})
}

// frameMessage encodes the current canvas as a websocket message.
func (s *Server) frameMessage() ([]byte, error) {
	f, err := s.frame()
	if err != nil {
		return nil, err
	}
	return json.Marshal(FrameMessage{
		Type:    TypeFrame,
		Version: f.version,
		Width:   f.width,
		Height:  f.height,
		PNG:     f.png,
	})
}

func errorOf(err error) []byte {
	b, _ := json.Marshal(ErrorMessage{Type: TypeError, Error: err.Error()})
	return b
}
