// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Everything runs on the caller's
// goroutine; the ingest and export loops are synchronous.
package services
