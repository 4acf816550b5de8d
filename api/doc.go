// Package api exposes the answer pipeline over HTTP.
//
// POST /ask accepts a query with optional session ID, delivery channel,
// and recipient, and returns the validated answer together with the
// session ID. Query screening and sanitization happen here at the edge,
// not inside the pipeline.
package api
