// Package utils provides common utility functions for the catalog-sync application.
// It includes helpers that turn loosely typed feed and API cells (strings, floats,
// integers) into the validated numeric types used by the reconcile engine.
package utils
