// Package prerequisites verifies that the tools and project directory a
// migration needs are present before anything is changed.
package prerequisites
