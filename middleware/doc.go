// Package middleware exposes HTTP middleware that authorizes requests by the
// mask carried in a bearer token.
//
// # Guards
//
//   - [Guard] verifies the token for a kind and injects the mask into the
//     request context.
//   - [Require] behaves like Guard, and additionally requires every given name to
//     be enabled in the mask.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into token.Manager and mask calls.
// Token verification is delegated to token.Manager.ParseMask and membership
// to mask.Mask.Has.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to token).
//   - Access Redis.
package middleware
