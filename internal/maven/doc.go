// Package maven runs the Maven goals used during a migration: the OpenRewrite
// recipe run, the versions plugin update, the skip-tests build and the test phase.
package maven
