// Package api wires the authentication and task services into HTTP handlers.
//
// Routes live under /api/v1. Signup and login are public; user and task
// endpoints require a Bearer token. Handlers translate the domain error
// taxonomy into HTTP statuses: DuplicateUser 409, InvalidCredentials and all
// token errors 401, NotFound 404, Forbidden 403, storage failures 500.
package api
