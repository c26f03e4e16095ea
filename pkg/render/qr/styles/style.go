package styles

import (
	"math/rand/v2"
	"sort"

	"github.com/matzehuels/qrsvg/pkg/errors"
	"github.com/matzehuels/qrsvg/pkg/render/qr/geom"
	"github.com/matzehuels/qrsvg/pkg/render/qr/neighbor"
	"github.com/matzehuels/qrsvg/pkg/render/qr/shape"
)

// Module is everything a drawer may look at for one active cell.
type Module struct {
	Coords    geom.Coords
	Neighbors neighbor.Set
	Region    geom.Region
	Rand      *rand.Rand // Only read by families with random output
}

// Drawer produces the primitives for one active cell. Returned primitives
// carry no fill; the renderer paints them.
type Drawer interface {
	Draw(m Module) []shape.Primitive
}

// FragmentDrawer is implemented by families that can contribute to a single
// merged path instead of emitting standalone elements.
type FragmentDrawer interface {
	Fragment(m Module) shape.Path
}

// VariantNamer reports which named variant a drawer picks for a neighbor set.
type VariantNamer interface {
	Variant(s neighbor.Set) string
}

// RuleNamer reports which neighbor predicate decided the variant.
type RuleNamer interface {
	Rule(s neighbor.Set) string
}

// baseRule names the fallback used when no predicate matches.
const baseRule = "base"

// Family describes one registered shape family.
type Family struct {
	Name        string
	Description string
	Neighbors   bool // Output depends on the neighbor context
	Random      bool // Output depends on Module.Rand
	New         func(g geom.Geometry) Drawer
}

// All is the canonical list of shape families, in presentation order.
var All = []*Family{
	Square, Circle, Blank, Diamond, RandomSquare,
	VerticalBars, Vertical2Bars, HorizontalBars, Horizontal2Bars,
	Rounded, Rounded2, Rounded2Inverted, Rounded2Inverted2,
	Sharp, Sharp2, Sharp2Inverted, Sharp2Inverted2,
	SharpRounded, SharpRounded2, Sharp2Diamond, Sharp2Rounded,
	SomeHeart,
}

// Find returns the family with the given name, or nil if not found.
func Find(name string) *Family {
	for _, f := range All {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Lookup is Find with a coded error for unknown names.
func Lookup(name string) (*Family, error) {
	if f := Find(name); f != nil {
		return f, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (available: %v)", name, Names())
}

// Names returns the registered family names in sorted order.
func Names() []string {
	names := make([]string, len(All))
	for i, f := range All {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}

// VariantOf returns the variant name d selects for s. Drawers that do not
// distinguish variants report "default".
func VariantOf(d Drawer, s neighbor.Set) string {
	if v, ok := d.(VariantNamer); ok {
		return v.Variant(s)
	}
	return "default"
}

// RuleOf returns the predicate name behind d's choice for s, "base" when
// none matched, or "" for drawers without a neighbor table.
func RuleOf(d Drawer, s neighbor.Set) string {
	if r, ok := d.(RuleNamer); ok {
		return r.Rule(s)
	}
	return ""
}
