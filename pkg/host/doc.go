// Package host describes the host document the importer creates
// elements in. Documents are mutated inside a single transaction.
package host
