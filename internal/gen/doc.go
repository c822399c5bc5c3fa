// Package gen provides deterministic Go code generation for resolved calls.
//
// Generation approach uses text/template + go/format for readable Go code.
// Every generated function wraps exactly one sink call whose format string
// was assembled or checked during resolution, so the emitted code does no
// formatting work of its own.
//
// Generated files carry a fingerprint of the call-site file they were built
// from, which lets a check run detect stale output without a full diff.
package gen
