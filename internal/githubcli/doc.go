// Package githubcli wraps the GitHub CLI for opening pull requests.
//
// Calls go through execshell so tests can substitute a recording executor.
package githubcli
