// Package registry holds the closed set of buildable unit kinds. Each kind
// carries a unique identifier, a declared prerequisite set, a declared
// required-tool set, and a build function. Modules register their kinds at
// startup, which preserves the "enumerate all known kinds" capability needed
// by the --all request mode without open-ended subclassing.
package registry
