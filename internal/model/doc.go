// Package model holds the authoritative logical state the algorithms mutate
// and the renderers read: bars for sorting and an undirected graph for
// traversal.
//
// A model value is owned by exactly one run at a time; nothing here is safe
// for concurrent mutation.
package model
