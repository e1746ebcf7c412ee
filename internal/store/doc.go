// Package store owns the on-disk layout of a pclubgit repository and the
// filesystem primitives every other package builds on.
//
// # Layout
//
// All paths are relative to the working directory the Store was opened on:
//
//	.pclubgit/index                  staged filenames, one per line
//	.pclubgit/head                   id of the most recent commit
//	.pclubgit/config.yaml            settings frozen at init
//	.pclubgit/commits/<id>/index     index as staged at commit time
//	.pclubgit/commits/<id>/parent    head before the commit
//	.pclubgit/commits/<id>/message   commit message
//	.pclubgit/commits/<id>/<file>    snapshot of each staged file
//	.pclubgit/tmp/                   commits under construction
//	.pclubgit/logs/                  operation log
//	.pclubgit/lock                   advisory lock for mutating operations
//
// # Primitives
//
// WriteString replaces a file through a temporary sibling and a rename, so a
// reader never observes a half-written file. ReadString refuses to return
// more than the caller's bound. Paths are always built from immutable parts;
// no helper mutates a shared buffer.
package store
