package sink

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
	ratio string
	seed  uint64
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONRatio records the size ratio in the output.
func WithJSONRatio(ratio string) JSONOption { return func(r *jsonRenderer) { r.ratio = ratio } }

// WithJSONSeed records the random seed so random styles can be re-rendered.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	Size     int           `json:"size"`
	Style    string        `json:"style,omitempty"`
	Ratio    string        `json:"ratio,omitempty"`
	Seed     uint64        `json:"seed,omitempty"`
	Path     string        `json:"path,omitempty"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	Kind   string        `json:"kind"`
	Fill   string        `json:"fill,omitempty"`
	X      json.Number   `json:"x,omitempty"`
	Y      json.Number   `json:"y,omitempty"`
	Width  json.Number   `json:"width,omitempty"`
	Height json.Number   `json:"height,omitempty"`
	RX     json.Number   `json:"rx,omitempty"`
	CX     json.Number   `json:"cx,omitempty"`
	CY     json.Number   `json:"cy,omitempty"`
	R      json.Number   `json:"r,omitempty"`
	Points []json.Number `json:"points,omitempty"`
	Rotate int           `json:"rotate,omitempty"`
	D      string        `json:"d,omitempty"`
}

// RenderJSON serializes recorded output with exact decimal coordinates.
func RenderJSON(rec *Recorder, size int, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Size:     size,
		Style:    r.style,
		Ratio:    r.ratio,
		Seed:     r.seed,
		Path:     rec.Path().String(),
		Elements: make([]jsonElement, 0, rec.Len()),
	}
	for _, p := range rec.Elements() {
		out.Elements = append(out.Elements, toJSONElement(p))
	}
	return json.MarshalIndent(out, "", "  ")
}

func num(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func nonZero(d decimal.Decimal) json.Number {
	if d.IsZero() {
		return ""
	}
	return num(d)
}

func toJSONElement(p shape.Primitive) jsonElement {
	el := jsonElement{Kind: p.Kind.String(), Fill: p.Fill}
	switch p.Kind {
	case shape.KindRect:
		el.X, el.Y = num(p.Rect.X), num(p.Rect.Y)
		el.Width, el.Height = num(p.Rect.W), num(p.Rect.H)
		el.RX = nonZero(p.Rect.RX)
	case shape.KindCircle:
		el.CX, el.CY, el.R = num(p.Circle.CX), num(p.Circle.CY), num(p.Circle.R)
	case shape.KindPolygon:
		for _, pt := range p.Polygon.Points {
			el.Points = append(el.Points, num(pt.X), num(pt.Y))
		}
		el.Rotate = p.Polygon.Rotate
		el.CX, el.CY = num(p.Polygon.Pivot.X), num(p.Polygon.Pivot.Y)
	case shape.KindPath:
		el.D = p.Path.String()
	}
	return el
}
