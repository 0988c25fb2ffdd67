// Package store provides the durable key-value storage the profile model
// persists into. Implementations are synchronous and never propagate write
// failures; callers observe them as a false return and decide whether to
// warn the user.
package store

// Store is a string-keyed persistence medium.
type Store interface {
	// Get returns the raw value for key and whether it was present.
	Get(key string) (string, bool)
	// Set writes a raw value under key. It must not panic or return an
	// error: any underlying failure is reported as false.
	Set(key, raw string) bool
}
