// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the override storage, the property resolver,
// metrics, handlers, routers, and the HTTP server, keeping the main package
// focused on CLI parsing and orchestration.
package application
