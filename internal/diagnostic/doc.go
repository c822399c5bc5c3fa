// Package diagnostic provides structured errors and warnings produced while
// resolving call-site files into generated sink calls.
//
// Every failure of the composition core maps to a stable code:
//   - duplicate_key: a format or specifier table binds the same key twice
//   - unresolved_key: a substitution or verb has no entry in its table
//   - argument_count_mismatch: verb count differs from argument count
//   - argument_type_mismatch: an argument's type differs from its verb's type
//   - finalized_state_reuse: a finished stream builder was used again
//   - unsupported_directive: a format uses '*' or an argument index
//
// Any error diagnostic refuses generation of the output file.
package diagnostic
