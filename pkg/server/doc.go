// Package server runs the HTTP status server of watch mode.
//
// The server exposes whatever handler it is given, normally the telemetry
// handler with the Prometheus metrics endpoint and the liveness, readiness
// and version probes:
//
//	srv := server.New(server.Config{ListenAddress: cfg.Watch.ListenAddress},
//	    tel.Handler(), tel.Logger())
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        logger.Error("status server failed", "error", err)
//	    }
//	}()
//
// Start blocks until ctx is cancelled and then shuts down gracefully.
//
// # Middleware Chain
//
// Requests pass through (outermost first):
//  1. RequestID: reuses or generates X-Request-ID
//  2. Recovery: turns handler panics into a 500 JSON response
//  3. Logging: logs each request at debug level
package server
