// Package scene defines the declarative scene description: the canvas, camera, animation timing, the list of
// visual elements and the post-processing settings. Scenes load from JSON, YAML or TOML and are validated
// before rendering.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Scene is a complete animation description.
type Scene struct {
	Canvas   Canvas         `json:"canvas"`
	Camera   Camera         `json:"camera"`
	Duration float32        `json:"duration"`
	FPS      uint32         `json:"fps"`
	Loop     bool           `json:"loop"`
	Elements []Element      `json:"-"`
	Post     PostProcessing `json:"post"`
}

// Canvas is the output frame size and clear color.
type Canvas struct {
	Width      uint32 `json:"width"`
	Height     uint32 `json:"height"`
	Background string `json:"background"`
}

// Camera is a perspective camera looking from Position at Target with a vertical field of view in degrees.
type Camera struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      float32    `json:"fov"`
}

// PostProcessing holds the strengths of the full-screen effects. Zero disables an effect.
type PostProcessing struct {
	Bloom               float32    `json:"bloom"`
	Scanlines           *Scanlines `json:"scanlines,omitempty"`
	ChromaticAberration float32    `json:"chromatic_aberration"`
	Noise               float32    `json:"noise"`
	Vignette            float32    `json:"vignette"`
	CRTCurvature        float32    `json:"crt_curvature"`
}

// Scanlines darkens every other horizontal band of the frame.
type Scanlines struct {
	Intensity float32 `json:"intensity"`
	Count     uint32  `json:"count"`
}

// DefaultCanvas returns an 800x600 canvas with a near-black background.
func DefaultCanvas() Canvas {
	return Canvas{Width: 800, Height: 600, Background: "#0a0a0a"}
}

// DefaultCamera returns a camera at (5,5,5) looking at the origin with a 45 degree field of view.
func DefaultCamera() Camera {
	return Camera{Position: [3]float32{5, 5, 5}, FOV: 45}
}

// DefaultScanlines returns the scanline settings used when a scene enables scanlines without values.
func DefaultScanlines() Scanlines {
	return Scanlines{Intensity: 0.1, Count: 300}
}

// New returns a Scene with default canvas, camera and timing and no elements.
//
// Returns:
//   - *Scene: the new scene
func New() *Scene {
	return &Scene{
		Canvas:   DefaultCanvas(),
		Camera:   DefaultCamera(),
		Duration: 2,
		FPS:      30,
		Loop:     true,
	}
}

// TotalFrames returns ceil(Duration * FPS).
//
// Returns:
//   - uint32: the number of frames the animation renders
func (s *Scene) TotalFrames() uint32 {
	n := math32.Ceil(s.Duration * float32(s.FPS))
	if n <= 0 {
		return 0
	}
	return uint32(n)
}

// Add appends elements to the scene.
//
// Parameters:
//   - elements: the elements to append
func (s *Scene) Add(elements ...Element) {
	s.Elements = append(s.Elements, elements...)
}

func (c *Canvas) UnmarshalJSON(b []byte) error {
	type alias Canvas
	a := alias(DefaultCanvas())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = Canvas(a)
	return nil
}

func (c *Camera) UnmarshalJSON(b []byte) error {
	type alias Camera
	a := alias(DefaultCamera())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = Camera(a)
	return nil
}

func (s *Scanlines) UnmarshalJSON(b []byte) error {
	type alias Scanlines
	a := alias(DefaultScanlines())
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*s = Scanlines(a)
	return nil
}

type sceneWire struct {
	Canvas   *Canvas           `json:"canvas"`
	Camera   *Camera           `json:"camera,omitempty"`
	Duration *float32          `json:"duration,omitempty"`
	FPS      *uint32           `json:"fps,omitempty"`
	Loop     *bool             `json:"loop,omitempty"`
	Elements []json.RawMessage `json:"elements"`
	Post     *PostProcessing   `json:"post,omitempty"`
}

func (s *Scene) UnmarshalJSON(b []byte) error {
	var w sceneWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Canvas == nil {
		return errors.New("missing field `canvas`")
	}

	out := New()
	out.Canvas = *w.Canvas
	if w.Camera != nil {
		out.Camera = *w.Camera
	}
	if w.Duration != nil {
		out.Duration = *w.Duration
	}
	if w.FPS != nil {
		out.FPS = *w.FPS
	}
	if w.Loop != nil {
		out.Loop = *w.Loop
	}
	if w.Post != nil {
		out.Post = *w.Post
	}
	for i, raw := range w.Elements {
		e, err := DecodeElement(raw)
		if err != nil {
			return fmt.Errorf("elements[%d]: %w", i, err)
		}
		out.Elements = append(out.Elements, e)
	}
	*s = *out
	return nil
}

func (s Scene) MarshalJSON() ([]byte, error) {
	elements := make([]json.RawMessage, 0, len(s.Elements))
	for _, e := range s.Elements {
		raw, err := EncodeElement(e)
		if err != nil {
			return nil, err
		}
		elements = append(elements, raw)
	}
	return json.Marshal(sceneWire{
		Canvas:   &s.Canvas,
		Camera:   &s.Camera,
		Duration: &s.Duration,
		FPS:      &s.FPS,
		Loop:     &s.Loop,
		Elements: elements,
		Post:     &s.Post,
	})
}
