// Package export writes commit history in formats meant for other tools.
//
//   - JSON: one document per commit, or an array on the printer
//   - Markdown: YAML frontmatter followed by the message and file list
//
// Example markdown output:
//
//	---
//	id: "0000000000000000000000000000000000000061"
//	parent: "0000000000000000000000000000000000000016"
//	files: 2
//	---
//
//	GO PCLUB! tighten the intro
//
//	## Files
//
//	- README.md
//	- docs/intro.md
//
// When writing to a directory each commit becomes <id>.json or <id>.md.
package export
