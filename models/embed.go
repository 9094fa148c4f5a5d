// Package models ships the pigo frontal face cascade (MIT, see
// LICENSE.facefinder) so the default detector needs no files on disk.
package models

import _ "embed"

// Facefinder is the packed pigo frontal face cascade.
//
//go:embed facefinder
var Facefinder []byte
