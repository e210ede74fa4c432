// Package httpserver runs the handlekit web UI with graceful shutdown.
//
// Server binds its listener up front, so a bad address fails Run immediately
// with ErrStart, and exposes Ready/Addr for callers (and tests) that need the
// bound address. Run blocks until its context is cancelled or Shutdown is
// called; signal handling is left to the caller, typically via
// signal.NotifyContext in main.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthCheckHandler serves liveness ("ALIVE") and readiness ("READY" or
// "NOT_READY") checks.
package httpserver
