// Package token carries a [mask.Mask] inside an HS256-signed JWT.
//
// The claims hold the kind name ("knd"), the raw integer ("msk") and the
// enabled names ("bits", informational only). Verification trusts the
// integer; names are never re-resolved from the token.
package token
