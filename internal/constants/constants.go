// Package constants provides centralized constant definitions for kubex.
// Magic numbers, strings, and defaults live here so the retry engine, the
// discovery cache, and the CLI agree on the same values.
//
// The constants are organized into logical categories:
//   - time.go: Timeouts, backoff durations, and cache lifetimes
//   - limits.go: Attempt counts, list limits, and detection thresholds
//   - paths.go: File paths, directories, and configuration locations
//   - errors.go: Error messages shared across packages
//   - http.go: HTTP status codes used for retry classification
//   - colors.go: Terminal colors for table output
//
// When adding new constants:
//  1. Choose the appropriate file based on the constant's category
//  2. Use clear, descriptive names following Go naming conventions
//  3. Add documentation explaining the purpose and any important notes
//  4. Include units in comments where applicable (e.g., seconds, bytes)
package constants
