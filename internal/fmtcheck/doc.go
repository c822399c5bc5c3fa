// Package fmtcheck defines an Analyzer that checks constant format strings
// passed to printf-like sinks against the types of their arguments.
//
// # Analyzer fmtcheck
//
// fmtcheck: check printf-like calls against a specifier table
//
// For every call to one of the functions named by -funcs whose format
// argument is a constant, the verbs of the format that appear in the
// -specifiers table are paired with the arguments positionally. The number
// of verbs must equal the number of arguments and every argument's type must
// be exactly the type bound to its verb: int64 does not satisfy %d, and a
// defined type does not satisfy the verb of its underlying type.
//
// Formats using a verb outside the table are not checked.
package fmtcheck
