// Package domain contains the core entities of the vocabulary engine:
// word items, study sets, quiz questions and session statistics, together
// with the normalization rules that keep term uniqueness case-insensitive
// across every collection.
package domain
