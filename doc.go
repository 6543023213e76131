// Package auth provides the authentication core of the chirpy service:
// bcrypt password hashing, HS256 JWT issuance and verification, bearer
// token extraction, and the failure taxonomy the HTTP boundary maps to
// status codes.
//
// Tokens:
//   - Tokens carry exactly four claims: iss ("chirpy"), sub, iat and exp.
//     Signing keys are passed on every call; TokenServiceImpl holds none.
//   - Verification checks signature and expiry first, then the issuer, then
//     that a subject is present. Every rejection is an Unauthorized failure.
//
// Failures:
//   - BadRequest, Unauthorized, Forbidden and NotFound build go-errors values
//     whose category and code identify the kind. KindOf, HTTPStatus and
//     ErrorMessage read them back; anything else is reported as a 500 with a
//     generic message.
//
// Middleware:
//   - middleware/jwtware guards go-router routes with the bearer extractor and
//     a TokenValidator, storing the verified Session in the request locals.
package auth
