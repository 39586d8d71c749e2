// Package types defines the record entities, the record store interfaces, the
// Backend that groups them, configuration, and the standard errors shared by
// every tracker.
//
// A Backend owns four ordered record stores (Inventory, Library, Gradebook,
// TaskList). Each store looks records up by a natural key with a linear scan
// and returns copies, never references into its own storage.
package types
