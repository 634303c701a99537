// Package expression evaluates the small expression language used by survey
// definitions for visibleIf rules and computed values.
//
// Supported syntax:
//   - references: `age`, `{age}`, dot paths `{address.city}`, and
//     `extras.campStart` for caller supplied context
//   - literals: strings, numbers, true/false, null
//   - comparisons: `==`, `!=`, `<`, `<=`, `>`, `>=`
//   - boolean composition: `!`, `&&`, `||`, parentheses
//   - function calls: `isMinor({dob}, extras.campStart)`
//
// Functions come from a functions.Registry. Errors raised by a function
// propagate to the caller wrapped with the function name.
package expression
