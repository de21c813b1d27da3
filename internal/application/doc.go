// Package application provides application initialization and dependency wiring.
// It seeds the product settings store from configuration and builds the
// calculator, handlers, routers, and HTTP server, keeping the main package
// focused on CLI parsing and orchestration.
package application
