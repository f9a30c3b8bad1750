// Package branching manages the git branches of a migration run: the timestamped
// backup branch, the migration branch, the commit and the push.
package branching
