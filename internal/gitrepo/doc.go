// Package gitrepo wraps the git commands jmigrate relies on.
//
// RepositoryManager creates and switches branches, synchronizes with a remote,
// stages and commits changes, and pushes. ParseRemoteURL turns remote URLs into
// host, owner and repository so compare links can be built.
package gitrepo
