// Package middleware groups the fiber middlewares mounted by the start command.
//
//   - rayid: keeps an incoming X-Ray-ID or generates one, stores it in the request locals
//     and echoes it in the response.
//   - auth: rejects requests without the configured key in X-API-Key or ?api_key=.
//     An empty key disables the check.
package middleware
