// Package workflow sequences a Java 8 to 11 migration of one Maven project.
//
// The Orchestrator runs a fixed list of operations: prerequisite check, backup
// branch, migration branch, descriptor update, OpenRewrite run, build with a single
// remediation retry, tests with an operator confirmation on failure, commit and
// publication. Terminal failures are reported as FatalError; a cancelled context at
// any point is reported as ErrInterrupted.
package workflow
