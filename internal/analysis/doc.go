// Package analysis inspects decoded physics documents without changing them.
//
//   - [Audit]: advisory consistency report (declared counts, vertex indices,
//     range ordering, dictionary coverage)
//   - [SampleCurve]: samples a normalization range for plotting
//
// The decoder deliberately accepts documents whose meta counts or indices do
// not add up. Audit surfaces those cases for tooling:
//
//	for _, f := range analysis.Audit(doc) {
//	    fmt.Println(f)
//	}
package analysis
