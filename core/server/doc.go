// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines the
// settings it reads: the listen port, the API key protecting every route, and the
// timeout applied to syncs triggered over HTTP.
package server
