// Package plan is the dependency resolver. It takes the requested unit kinds,
// closes them over their transitive prerequisites, and produces a linear
// execution order in which every kind appears after everything it depends on.
// A cycle in the declared prerequisites is a fatal configuration error.
package plan
