// Package plan provides the resolution pipeline that produces a final
// Plan consumed by code generation.
//
// Resolution pipeline:
//  1. Validate the call-site file structure
//  2. Build the format and specifier tables (duplicates abort)
//  3. For each call:
//     - Resolve parameter types to classification keys and imports
//     - Stream calls: push literals and substitutions into a stream builder
//     and assemble the format string
//     - Format calls: check the literal format against the operand keys
//  4. Emit diagnostics; any error refuses the plan
package plan
