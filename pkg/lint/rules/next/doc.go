// Package next provides lint rules for Next.js projects.
//
// Rules in this package:
//   - NX01: next/image used with a non-SVG source
package next
