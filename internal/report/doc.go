// Package report renders payroll calculation results as persisted JSON
// report documents and condensed in-memory summaries. Reports are written
// into a configurable output directory with timestamped file names.
package report
