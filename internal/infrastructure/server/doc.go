// Package server wires configuration, logging, metrics, the preview manager
// and its strategies into the Gin host API.
package server
