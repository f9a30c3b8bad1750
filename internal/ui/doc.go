// Package ui renders operator-facing console output.
//
// Console prints framed banners, colored status lines and numbered lists through
// termenv so colors follow the capabilities of the attached terminal. Diagnostic
// detail stays in the zap loggers.
package ui
