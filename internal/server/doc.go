// Package server exposes the sentiment reconciler over HTTP: an HTML page with
// the single-comment and file-upload flows, and a JSON API with the same two
// flows.
package server
