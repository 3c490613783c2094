// Package validator checks payroll inputs against business and compliance
// rules before they reach the calculator. It normalizes employee records
// (lowercased locations, non-nil benefit maps) and reports failures through
// sentinel errors so callers can map them onto HTTP statuses.
package validator
