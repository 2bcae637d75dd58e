// Package rules provides the built-in rewrite rules for sidconv.
//
// # Statement rules
//
// Statement rules classify a whole statement. The first one that matches
// replaces it:
//
//   - SC001: base-address - Assignments of the SID base address to a variable
//   - SC002: sid-poke - POKEs into the SID register window become OUT pairs
//   - SC003: delay-scale - Empty FOR delay loops get a scaled bound
//   - SC004: get-inkey - GET A$ becomes A$=INKEY$
//
// # Expression rules
//
// Expression rules edit CHR$ calls inside statements already processed by
// the statement rules:
//
//   - SC010: screen-map - Known PETSCII screen codes become ANSI sequences
//   - SC011: petscii-strip - Unmapped control codes are removed
package rules
