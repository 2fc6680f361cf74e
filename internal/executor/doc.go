// Package executor runs the resolved unit sequence. For each unit kind it
// acquires an isolated scratch workspace under the output root, invokes the
// kind's build operation, and atomically publishes the produced artifacts
// into a stable per-kind directory by hard link, recording the stable paths
// into the shared run context. Scratch workspaces are destroyed on every exit
// path; published directories persist after the run.
package executor
