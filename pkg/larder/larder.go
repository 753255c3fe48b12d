// Package larder records release metadata for the larder tool.
package larder

// Version is the current larder release.
const Version = "0.2.0"
