// Package migration builds the Cobra commands that run the Java migration
// workflow and its prerequisite check against a Maven project.
package migration
