// Package env maps prefixed environment variables onto dotted config keys.
//
// Variable names encode keys with "_" as the path separator and "__" as an
// escaped literal underscore, e.g. CONFIG_omero_web_public__enabled decodes
// to omero.web.public_enabled.
package env
