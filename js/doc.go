// Package js defines the owned ECMAScript tree the transform operates on.
//
// The host compiler parses source text and hands a tree across the boundary
// (see package estree for the JSON encoding); this package is the in-memory
// representation. Nodes are plain structs behind Stmt/Expr marker
// interfaces, with source locations on the nodes that surface in errors.
//
// Rewriting follows a clone-then-substitute discipline: CloneStmt/CloneExpr
// produce fully independent copies, so a cataloged function body can be
// expanded at several call sites without aliasing. Walk provides read-only
// traversal; PrintModule renders source text for tooling and tests.
//
// Coverage is intentionally the subset the transform must understand. Type
// annotations from typed supersets are dropped at the decode boundary and
// never represented here.
package js
