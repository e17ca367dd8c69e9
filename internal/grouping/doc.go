// Package grouping partitions scanned frames into Groups by their
// acquisition-equivalence key.
package grouping
