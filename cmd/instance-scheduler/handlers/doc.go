// Package handlers implements the business logic for CLI commands.
//
// Handlers are invoked by the commands package after flags are parsed. They
// load configuration, build the provider client and print results.
// Constructors are held in package variables so tests can replace them.
package handlers
