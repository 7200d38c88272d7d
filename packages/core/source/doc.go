// Package source loads raw config sources (files, environment) into parsed
// documents ready for merging.
package source
