// Package project walks a site directory and decides which files ship.
//
// # Overview
//
// Publishing starts from a project root on local disk. This package
// provides the two pieces the archive builder depends on:
//
//   - [RuleSet]: ordered ignore rules with gitignore-style semantics
//   - [Collect]: deterministic traversal producing the file list to archive
//
// [Measure] additionally reports the file count and total byte size of
// the same set, which the deploy service expects as request headers.
//
// # Ignore rules
//
// Rules come from three sources, evaluated in order: built-in excludes
// (version-control directories and similar junk), patterns supplied by
// the caller, and `.surgeignore` files discovered in the tree. A
// `.surgeignore` found in a subdirectory only affects paths under that
// directory, and its rules are appended after the parent's, so deeper
// rules win ties. Within the combined list the last matching rule
// decides, and a `!` prefix re-includes a previously excluded path.
//
// Pattern syntax follows gitignore: `*` matches within a path segment,
// `?` matches one character, `[a-z]` character classes, `**` spans
// segments, a trailing `/` restricts the rule to directories, and a
// pattern containing a slash is anchored to the rule's directory.
// Excluding a directory excludes everything beneath it; a negation
// cannot resurrect files under an excluded directory.
//
// # Determinism
//
// [Collect] returns forward-slash relative paths sorted
// lexicographically, regardless of host path separator or readdir
// order. Two collections over an unchanged tree return identical
// slices, which is what makes rebuilt archives byte-identical.
package project
