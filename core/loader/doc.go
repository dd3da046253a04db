// Package loader registers HTTP features and mounts their routes.
//
// A feature is a self-contained group of routes (sync, integrity) that implements
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers every feature with a Manager and calls LoadAll once the
// global middlewares are in place. Disabled features are skipped.
package loader
