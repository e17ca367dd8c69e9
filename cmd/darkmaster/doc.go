// Command darkmaster is the CLI entry point: run a batch over the
// configured input roots, inspect the run-history ledger, and manage the
// configuration file.
package main
