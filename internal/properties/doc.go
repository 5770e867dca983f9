// Package properties resolves configuration values by key. A key must look
// like a POSIX environment variable name (upper-case letters, digits and
// underscores, not starting with a digit). Local overrides set by the process
// take precedence over inherited environment variables.
package properties
