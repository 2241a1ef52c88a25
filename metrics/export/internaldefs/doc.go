// Package internaldefs holds the metric names shared by the Prometheus and
// OTel exporters so both publish identical names and bucket boundaries.
//
// # What this package must NOT do
//
//   - Import any exporter package.
//   - Perform I/O.
package internaldefs
