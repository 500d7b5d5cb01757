// Package memory provides the process-local implementation of
// store.TaskStore. Its contents live only as long as the process.
package memory
