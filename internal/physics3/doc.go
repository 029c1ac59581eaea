// Package physics3 decodes and models .physics3.json documents, the physics
// settings of a rigged 2D character model.
//
// A document describes, per setting, how input parameters drive a chain of
// simulated pendulum vertices and how those vertices feed back into output
// parameters:
//
//   - [Physics3]: the document root (version, meta block, settings)
//   - [Setting]: one simulated group with its inputs, outputs and vertices
//   - [Target]: sealed sum type naming the parameter an input/output refers to
//   - [RangeParam]: clamp bounds used by [RangeParam.Normalize]
//
// # Example
//
//	doc, err := physics3.Decode(f)
//	if err != nil {
//	    return err
//	}
//	for _, s := range doc.Settings {
//	    if s.Normalization != nil {
//	        angle := s.Normalization.Angle.Normalize(nil)
//	        _ = angle
//	    }
//	}
//
// # Errors
//
// Decoding is all-or-nothing. The parsed tree is checked against
// [DocumentSchema] before any record is built. Failures are reported as
// [*SyntaxError], [*SchemaError] or [*UnknownVariantError] and match
// [ErrSyntax], [ErrSchema] and [ErrUnknownVariant] under errors.Is.
//
// # Thread Safety
//
// Decoding shares only the read-only validation schema and may run
// concurrently on independent inputs. Decoded documents are not mutated by this package and can be shared
// read-only between goroutines.
package physics3
