// Package validate checks a literal format string against an ordered argument
// sequence.
//
// The verbs of the format string that are keys of a kind.Specifiers table are
// extracted in order. Their count must equal the number of arguments, and the
// key bound to each verb must equal the classification key of the argument at
// the same position. Only then are the format and arguments forwarded,
// unchanged, to a sink.
package validate
