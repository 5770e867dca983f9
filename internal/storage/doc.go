// Package storage keeps the local overrides that take precedence over
// environment variables during property resolution.
package storage
