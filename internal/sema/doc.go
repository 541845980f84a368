// Package sema hosts the static analyzer: a configurable, ordered set of
// passes over the token stream and the AST of one file. Passes only report
// findings; they never rewrite the tree.
package sema
