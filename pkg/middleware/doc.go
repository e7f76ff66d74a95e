// Package middleware provides HTTP middleware for bearer-token
// authentication.
package middleware
