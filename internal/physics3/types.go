package physics3

import (
	"fmt"
	"slices"
)

// Physics3 is the root of a .physics3.json document.
type Physics3 struct {
	// Version is a forward-compatibility tag. Unknown values decode; callers
	// decide what they support.
	Version  int
	Meta     Meta
	Settings []Setting
}

// Meta carries aggregate counts and the id → name dictionary. The counts are
// advisory and are not checked against the actual list lengths.
type Meta struct {
	TotalInputCount  int
	TotalOutputCount int
	TotalVertices    int
	SettingCount     int
	EffectiveForces  EffectiveForces
	Dictionary       []IDName
}

type EffectiveForces struct {
	Gravity Vector2
	Wind    Vector2
}

// IDName pairs a setting id with a human readable name.
type IDName struct {
	ID   string
	Name string
}

// Setting is one simulated group, e.g. a single hair lock.
type Setting struct {
	ID       string
	Inputs   []Input
	Outputs  []Output
	Vertices []Vertex
	// Normalization is nil when the setting declares none.
	Normalization *Normalization
}

// Input maps an external driving parameter into the simulation.
type Input struct {
	Source  Target
	Weight  float64
	Type    Type
	Reflect bool
}

// Output maps a simulated vertex back out to an external parameter.
// VertexIndex is not range checked against the owning setting's vertices.
type Output struct {
	Destination Target
	VertexIndex int
	Scale       float64
	Weight      float64
	Type        Type
	Reflect     bool
}

// Vertex is one node of a simulated pendulum chain.
type Vertex struct {
	Position     Vector2
	Mobility     float64
	Delay        float64
	Acceleration float64
	Radius       float64
}

type Normalization struct {
	Position RangeParam
	Angle    RangeParam
}

// RangeParam holds the bounds and fallback used to sanitize a driving value.
// Minimum <= Maximum is expected but not enforced.
type RangeParam struct {
	Minimum float64
	Maximum float64
	Default float64
}

type Vector2 struct {
	X float64
	Y float64
}

// Vec builds a Vector2.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// XY returns the components as a pair.
func (v Vector2) XY() (float64, float64) {
	return v.X, v.Y
}

// Type selects which component of a vertex or parameter is used.
type Type int

const (
	TypeX Type = iota
	TypeY
	TypeAngle
)

var typeNames = [...]string{
	TypeX:     "X",
	TypeY:     "Y",
	TypeAngle: "Angle",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps an external tag to a Type.
func ParseType(s string) (Type, bool) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), true
		}
	}
	return 0, false
}

// TargetKind is the value of the external "Target" discriminator.
type TargetKind string

const (
	TargetParameter TargetKind = "Parameter"
)

// Target is the sealed sum of things an input or output can reference.
// ParameterTarget is currently the only implementation.
type Target interface {
	Kind() TargetKind
	isTarget()
}

// ParameterTarget references a model parameter by id.
type ParameterTarget struct {
	ID string
}

func (ParameterTarget) Kind() TargetKind { return TargetParameter }
func (ParameterTarget) isTarget()        {}

// Parameter builds a ParameterTarget.
func Parameter(id string) ParameterTarget {
	return ParameterTarget{ID: id}
}

// Clone returns a deep copy of the document.
func (p *Physics3) Clone() *Physics3 {
	if p == nil {
		return nil
	}
	c := &Physics3{
		Version: p.Version,
		Meta:    p.Meta,
	}
	c.Meta.Dictionary = slices.Clone(p.Meta.Dictionary)
	if p.Settings != nil {
		c.Settings = make([]Setting, len(p.Settings))
		for i, s := range p.Settings {
			c.Settings[i] = s.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the setting.
func (s Setting) Clone() Setting {
	c := Setting{
		ID:       s.ID,
		Inputs:   slices.Clone(s.Inputs),
		Outputs:  slices.Clone(s.Outputs),
		Vertices: slices.Clone(s.Vertices),
	}
	if s.Normalization != nil {
		n := *s.Normalization
		c.Normalization = &n
	}
	return c
}

// Setting returns the first setting with the given id.
func (p *Physics3) Setting(id string) (Setting, bool) {
	for _, s := range p.Settings {
		if s.ID == id {
			return s, true
		}
	}
	return Setting{}, false
}

// Name looks id up in the dictionary.
func (p *Physics3) Name(id string) (string, bool) {
	for _, e := range p.Meta.Dictionary {
		if e.ID == id {
			return e.Name, true
		}
	}
	return "", false
}

// Vertex returns the vertex an output reads from, if the index is in range.
func (s Setting) Vertex(o Output) (Vertex, bool) {
	if o.VertexIndex < 0 || o.VertexIndex >= len(s.Vertices) {
		return Vertex{}, false
	}
	return s.Vertices[o.VertexIndex], true
}
