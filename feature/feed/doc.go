// Package feed implements the product feed sources consumed by the reconcile engine.
//
// A feed is a file listing the current product key, name, price and stock. It is read
// either from the storage bucket (StorageSource) or downloaded over HTTP (HTTPSource),
// then decoded by Decode into raw rows. CSV, JSON and YAML layouts are supported; the
// column names are configurable and default to the supplier's stock report headers.
//
// Decoding keeps cells as they are. Validation and conversion to prices and stock
// quantities happen in reconcile.Normalize.
package feed
