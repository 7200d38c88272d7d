// Package document defines the parsed form of an external config source.
//
// A document is a mapping of section names to bodies of config-key/value
// pairs. Section names carry a _set or _append suffix that selects the
// operation applied to the body, and sections are ordered lexicographically
// so that merges are deterministic.
package document
