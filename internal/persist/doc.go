// Package persist stores flat integer arrays keyed by username.
//
// The server exposes two JSON endpoints:
//
//	POST /save_array          {"username": "...", "array": [...]}
//	GET  /load_array/{username}  -> {"array": [...]}
//
// An empty or missing array means nothing was saved for that user. Arrays
// are kept in a Store: a single JSON file, a SQLite database or memory.
package persist
