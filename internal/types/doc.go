// Package types defines shared data structures used across the studio backend:
// workspace and project-file records, the tool/service definitions exposed to
// the agent layer, and execution results.
package types
