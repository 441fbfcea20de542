// Package syncer imports history records from a legacy NAStool database into
// the local history stores. A run extracts each enabled record category,
// normalizes rows through the configured remap rules, and writes the results
// through the store adapters, absorbing per-record failures into counts.
package syncer
