// Package cli constructs the jmigrate command-line interface, wiring the Cobra
// command hierarchy, the configuration loader with its embedded defaults, and
// structured logging. It exposes helpers to build application instances and to
// execute the default command set.
package cli
