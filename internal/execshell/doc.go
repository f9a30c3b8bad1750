// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution and OSToolLocator for PATH probing, and defines the
// abstractions jmigrate uses to run git, mvn, gh, and java in a testable manner.
package execshell
