// Package auth implements credential hashing, signed identity tokens and the
// registration/login flow for the task tracker.
//
// Passwords are stored as bcrypt digests only. Identity is carried in stateless
// HS256 JWTs binding a subject (the username) and an absolute expiry; there is
// no server-side revocation. The signing key and token TTL are injected at
// construction so outstanding tokens are invalidated by key rotation and tests
// can use throwaway keys.
package auth
