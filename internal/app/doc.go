// Package app wires configuration, logging and the dune generator together.
// It is independent of the entrypoint: the CLI builds a Config and hands it
// to NewApp.
package app
