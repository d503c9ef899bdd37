// Package middleware provides the HTTP middleware of the watch-mode status
// server: request IDs, debug request logging and panic recovery.
package middleware
