package physics3

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

const targetTagKey = "Target"

// Wire mapping, one table per record. External keys are PascalCase; the
// irregular renames are Meta.VertexCount, Meta.PhysicsSettingCount,
// Meta.PhysicsDictionary, Setting.Input, Setting.Output and the two Type keys.

var vectorFields = []field[Vector2]{
	optional(floatField("X", "x", func(v *Vector2) *float64 { return &v.X }), func(v *Vector2) { v.X = 0 }),
	optional(floatField("Y", "y", func(v *Vector2) *float64 { return &v.Y }), func(v *Vector2) { v.Y = 0 }),
}

var effectiveForcesFields = []field[EffectiveForces]{
	optional(objectField("Gravity", "gravity", vectorFields, func(e *EffectiveForces) *Vector2 { return &e.Gravity }),
		func(e *EffectiveForces) { e.Gravity = Vector2{} }),
	optional(objectField("Wind", "wind", vectorFields, func(e *EffectiveForces) *Vector2 { return &e.Wind }),
		func(e *EffectiveForces) { e.Wind = Vector2{} }),
}

var idNameFields = []field[IDName]{
	stringField("Id", "id", func(e *IDName) *string { return &e.ID }),
	stringField("Name", "name", func(e *IDName) *string { return &e.Name }),
}

var metaFields = []field[Meta]{
	intField("TotalInputCount", "total_input_count", func(m *Meta) *int { return &m.TotalInputCount }),
	intField("TotalOutputCount", "total_output_count", func(m *Meta) *int { return &m.TotalOutputCount }),
	intField("VertexCount", "total_vertices", func(m *Meta) *int { return &m.TotalVertices }),
	intField("PhysicsSettingCount", "setting_count", func(m *Meta) *int { return &m.SettingCount }),
	objectField("EffectiveForces", "effective_forces", effectiveForcesFields, func(m *Meta) *EffectiveForces { return &m.EffectiveForces }),
	arrayField("PhysicsDictionary", "dictionary", true, idNameFields, func(m *Meta) *[]IDName { return &m.Dictionary }),
}

// parameterFields includes the discriminator so strict decoding accepts it
// and encoding writes it first.
var parameterFields = []field[ParameterTarget]{
	{
		key: targetTagKey, name: "target", required: true,
		schema: func(bool) *openapi3.Schema { return openapi3.NewStringSchema() },
		decode: func(*decoder, any, string, *ParameterTarget) error { return nil },
		encode: func(*ParameterTarget, string) (any, bool, error) { return string(TargetParameter), true, nil },
	},
	stringField("Id", "id", func(t *ParameterTarget) *string { return &t.ID }),
}

// targetDecoders holds one entry per known Target tag.
var targetDecoders = map[TargetKind]func(d *decoder, obj map[string]any, path string) (Target, error){
	TargetParameter: func(d *decoder, obj map[string]any, path string) (Target, error) {
		var t ParameterTarget
		if err := decodeObject(d, obj, path, parameterFields, &t); err != nil {
			return nil, err
		}
		return t, nil
	},
}

func targetKinds() []string {
	kinds := make([]string, 0, len(targetDecoders))
	for k := range targetDecoders {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

var inputFields = []field[Input]{
	targetField("Source", "source", func(i *Input) *Target { return &i.Source }),
	floatField("Weight", "weight", func(i *Input) *float64 { return &i.Weight }),
	typeField("Type", "input_type", func(i *Input) *Type { return &i.Type }),
	boolField("Reflect", "reflect", func(i *Input) *bool { return &i.Reflect }),
}

var outputFields = []field[Output]{
	targetField("Destination", "destination", func(o *Output) *Target { return &o.Destination }),
	intField("VertexIndex", "vertex_index", func(o *Output) *int { return &o.VertexIndex }),
	floatField("Scale", "scale", func(o *Output) *float64 { return &o.Scale }),
	floatField("Weight", "weight", func(o *Output) *float64 { return &o.Weight }),
	typeField("Type", "output_type", func(o *Output) *Type { return &o.Type }),
	boolField("Reflect", "reflect", func(o *Output) *bool { return &o.Reflect }),
}

var vertexFields = []field[Vertex]{
	objectField("Position", "position", vectorFields, func(v *Vertex) *Vector2 { return &v.Position }),
	floatField("Mobility", "mobility", func(v *Vertex) *float64 { return &v.Mobility }),
	floatField("Delay", "delay", func(v *Vertex) *float64 { return &v.Delay }),
	floatField("Acceleration", "acceleration", func(v *Vertex) *float64 { return &v.Acceleration }),
	floatField("Radius", "radius", func(v *Vertex) *float64 { return &v.Radius }),
}

var rangeFields = []field[RangeParam]{
	floatField("Minimum", "minimum", func(r *RangeParam) *float64 { return &r.Minimum }),
	floatField("Maximum", "maximum", func(r *RangeParam) *float64 { return &r.Maximum }),
	floatField("Default", "default", func(r *RangeParam) *float64 { return &r.Default }),
}

var normalizationFields = []field[Normalization]{
	objectField("Position", "position", rangeFields, func(n *Normalization) *RangeParam { return &n.Position }),
	objectField("Angle", "angle", rangeFields, func(n *Normalization) *RangeParam { return &n.Angle }),
}

var settingFields = []field[Setting]{
	stringField("Id", "id", func(s *Setting) *string { return &s.ID }),
	arrayField("Input", "inputs", false, inputFields, func(s *Setting) *[]Input { return &s.Inputs }),
	arrayField("Output", "outputs", false, outputFields, func(s *Setting) *[]Output { return &s.Outputs }),
	arrayField("Vertices", "vertices", false, vertexFields, func(s *Setting) *[]Vertex { return &s.Vertices }),
	{
		// null and absent both mean "no normalization".
		key: "Normalization", name: "normalization",
		schema: func(strict bool) *openapi3.Schema {
			return objectSchema(normalizationFields, strict).WithNullable()
		},
		fallback: func(s *Setting) { s.Normalization = nil },
		decode: func(d *decoder, v any, path string, s *Setting) error {
			if v == nil {
				s.Normalization = nil
				return nil
			}
			var n Normalization
			if err := decodeObject(d, v, path, normalizationFields, &n); err != nil {
				return err
			}
			s.Normalization = &n
			return nil
		},
		encode: func(s *Setting, path string) (any, bool, error) {
			if s.Normalization == nil {
				return nil, false, nil
			}
			o, err := encodeObject(normalizationFields, s.Normalization, path)
			return o, true, err
		},
	},
}

var documentFields = []field[Physics3]{
	intField("Version", "version", func(p *Physics3) *int { return &p.Version }),
	objectField("Meta", "meta", metaFields, func(p *Physics3) *Meta { return &p.Meta }),
	arrayField("PhysicsSettings", "settings", true, settingFields, func(p *Physics3) *[]Setting { return &p.Settings }),
}

// FieldInfo describes one entry of the wire mapping.
type FieldInfo struct {
	Record   string
	Key      string
	Name     string
	Required bool
}

// Schema lists the wire mapping in declaration order.
func Schema() []FieldInfo {
	var out []FieldInfo
	out = appendInfo(out, "Physics3", documentFields)
	out = appendInfo(out, "Meta", metaFields)
	out = appendInfo(out, "EffectiveForces", effectiveForcesFields)
	out = appendInfo(out, "IdName", idNameFields)
	out = appendInfo(out, "Setting", settingFields)
	out = appendInfo(out, "Input", inputFields)
	out = appendInfo(out, "Output", outputFields)
	out = appendInfo(out, "Parameter", parameterFields)
	out = appendInfo(out, "Vertex", vertexFields)
	out = appendInfo(out, "Normalization", normalizationFields)
	out = appendInfo(out, "RangeParam", rangeFields)
	out = appendInfo(out, "Vector2", vectorFields)
	return out
}

func appendInfo[T any](out []FieldInfo, record string, fields []field[T]) []FieldInfo {
	for _, f := range fields {
		out = append(out, FieldInfo{Record: record, Key: f.key, Name: f.name, Required: f.required})
	}
	return out
}
