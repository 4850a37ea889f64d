// Package services holds the lexai use cases: quota tracking, source
// fallback, search orchestration, settings and subscriptions. Services
// depend only on ports, so every adapter can be swapped in tests.
package services
