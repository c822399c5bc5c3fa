// Package kind defines classification keys: canonical type identities used to
// select format fragments and to check arguments against format verbs.
//
// Keys come from three places: reflect types (Of, FromReflectType), go/types
// types seen by the type checker (FromGoType) and type names written in
// call-site files (Parse). All three agree on predeclared types and on named
// types qualified by package name.
package kind
