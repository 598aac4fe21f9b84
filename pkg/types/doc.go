// Package types defines the storage Engine interface, the six entity kinds of
// the rental domain, their serialization contract, configuration, and the
// standard error values shared by both storage backends.
package types
