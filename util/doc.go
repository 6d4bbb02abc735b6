// Package util provides small generic helpers shared across the module:
// pointer helpers, string utilities, size parsing, and input sanitization.
package util
