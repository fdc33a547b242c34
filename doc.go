// Package zparse parses JSON, TOML, YAML, and XML documents into one
// unified value tree, converts between any pair of those formats, and
// re-serializes with configurable style. All entry points are pure
// functions over their inputs; adversarial input is bounded by
// configurable depth, size, string length, and entry count limits
// rather than by cancellation.
//
// The subpackages hold the machinery: token scans, parse builds ir
// trees, convert reshapes them between format data models, encode
// serializes, and diag renders errors with source excerpts. This
// package ties them together for callers who want one import.
package zparse
