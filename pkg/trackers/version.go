// Package trackers holds build-level metadata for the trackers binary.
package trackers

// Version is the current release of the trackers module.
const Version = "0.1.0"
