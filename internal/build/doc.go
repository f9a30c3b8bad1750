// Package build classifies the Maven build and test phases as passed or failed from their exit status.
package build
