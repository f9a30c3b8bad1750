// Package migration invokes the OpenRewrite recipe against a project and performs
// the single remediation pass used when the first build after migration fails.
//
// Neither step returns an error: a failed recipe run or dependency update leaves the
// working tree for the build to judge.
package migration
