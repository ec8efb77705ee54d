// Package sjava decides whether an s-Java source is well-formed without running it.
//
// The input is a sequence of normalized logical lines (see package preprocess).
// Build partitions them into a tree of scopes: one Global scope owning Method
// scopes, which in turn own Conditional (if/while) scopes. Walk then visits the
// tree depth-first, classifying every residual line and checking declarations,
// assignments, conditions, calls and returns against the declared types.
//
// Variables are resolved lexically. Conditional scopes share their ancestors'
// variables; Method scopes take a private copy of any ancestor variable on first
// reference, so a method body can never change the state its caller observes.
//
// Checking stops at the first violation, reported as an *Error.
package sjava
