package physics3_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physics3/internal/physics3"
)

const document = `{
	"Version": 3,
	"Meta": {
		"TotalInputCount": 1, "TotalOutputCount": 1, "VertexCount": 2, "PhysicsSettingCount": 1,
		"EffectiveForces": {"Gravity": {"X": 0, "Y": -1}},
		"PhysicsDictionary": [{"Id": "PhysicsSetting1", "Name": "Tail"}]
	},
	"PhysicsSettings": [{
		"Id": "PhysicsSetting1",
		"Input": [{"Source": {"Target": "Parameter", "Id": "ParamAngleX"}, "Weight": 100, "Type": %q, "Reflect": false}],
		"Output": [{"Destination": {"Target": %q, "Id": "ParamTail"}, "VertexIndex": 1, "Scale": 2, "Weight": 100, "Type": "Angle", "Reflect": false}],
		"Vertices": [
			{"Position": {"X": 0, "Y": 0}, "Mobility": 1, "Delay": 1, "Acceleration": 1, "Radius": 0},
			{"Position": {"X": 0, "Y": 12}, "Mobility": 0.9, "Delay": 0.8, "Acceleration": 1.2, "Radius": 12}
		],
		"Normalization": {
			"Position": {"Minimum": -10, "Maximum": 10, "Default": 0},
			"Angle": {"Minimum": -10, "Maximum": 10, "Default": 0}
		}
	}]
}`

func render(inputType, target string) string {
	return fmt.Sprintf(document, inputType, target)
}

var _ = Describe("Decode", func() {
	Context("with a well formed document", func() {
		var doc *physics3.Physics3

		BeforeEach(func() {
			var err error
			doc, err = physics3.Parse(render("Y", "Parameter"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the wire renames", func() {
			Expect(doc.Meta.TotalVertices).To(Equal(2))
			Expect(doc.Meta.SettingCount).To(Equal(1))
			Expect(doc.Settings[0].Inputs).To(HaveLen(1))
			Expect(doc.Settings[0].Outputs).To(HaveLen(1))
		})

		It("defaults an absent wind to zero", func() {
			Expect(doc.Meta.EffectiveForces.Wind).To(Equal(physics3.Vector2{}))
			Expect(doc.Meta.EffectiveForces.Gravity).To(Equal(physics3.Vec(0, -1)))
		})

		It("decodes tagged targets", func() {
			Expect(doc.Settings[0].Inputs[0].Source).To(Equal(physics3.Parameter("ParamAngleX")))
			Expect(doc.Settings[0].Outputs[0].Destination.Kind()).To(Equal(physics3.TargetParameter))
		})

		It("decodes the type enum", func() {
			Expect(doc.Settings[0].Inputs[0].Type).To(Equal(physics3.TypeY))
			Expect(doc.Settings[0].Outputs[0].Type).To(Equal(physics3.TypeAngle))
		})

		It("survives an encode/decode cycle", func() {
			data, err := physics3.Marshal(doc)
			Expect(err).NotTo(HaveOccurred())

			again, err := physics3.Unmarshal(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(doc))
		})
	})

	DescribeTable("rejects unknown variants",
		func(inputType, target string) {
			doc, err := physics3.Parse(render(inputType, target))
			Expect(doc).To(BeNil())
			Expect(err).To(MatchError(physics3.ErrUnknownVariant))
		},
		Entry("input type Z", "Z", "Parameter"),
		Entry("lower case type", "angle", "Parameter"),
		Entry("part target", "X", "Part"),
	)

	It("reports a missing version as a schema error", func() {
		_, err := physics3.Parse(`{"Meta": {}, "PhysicsSettings": []}`)
		Expect(err).To(MatchError(physics3.ErrSchema))

		var schemaErr *physics3.SchemaError
		Expect(err).To(BeAssignableToTypeOf(schemaErr))
	})

	It("reports malformed text as a syntax error", func() {
		_, err := physics3.Parse(`{"Version": 3, "Meta": {`)
		Expect(err).To(MatchError(physics3.ErrSyntax))
	})
})

var _ = Describe("RangeParam.Normalize", func() {
	r := physics3.RangeParam{Minimum: -1, Maximum: 1, Default: 0.5}

	It("returns the default when no value is supplied", func() {
		Expect(r.Normalize(nil)).To(Equal(0.5))
	})

	DescribeTable("clamps into the range",
		func(v, want float64) {
			Expect(r.Normalize(&v)).To(Equal(want))
		},
		Entry("below", -3.0, -1.0),
		Entry("inside", 0.25, 0.25),
		Entry("above", 7.0, 1.0),
	)
})
