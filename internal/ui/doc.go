// Package ui formats human-readable console output for command lifecycle
// events so that interactive runs show what git is doing while structured
// telemetry keeps flowing through the diagnostic logger.
package ui
