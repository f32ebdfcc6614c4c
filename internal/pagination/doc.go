// Package pagination projects a record collection onto the visible page.
//
// The package contains:
//   - Project: the pure (records, filter, page, size) -> Page derivation
//   - Meta: response metadata for paginated results
//   - Params: CLI flag values and their validation
//
// Nothing here keeps state between calls; callers re-project after every
// state change.
package pagination
