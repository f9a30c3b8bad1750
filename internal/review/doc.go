// Package review pushes the migration branch and opens the pull request, falling
// back to manual instructions when the GitHub CLI is unavailable or fails.
package review
