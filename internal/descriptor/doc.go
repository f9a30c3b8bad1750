// Package descriptor rewrites the Java version markers of a Maven project
// descriptor.
//
// The edit is a fixed, ordered list of literal substitutions. Nothing else in
// the file is parsed or touched, and a file without any known marker is left
// byte-for-byte unchanged.
package descriptor
