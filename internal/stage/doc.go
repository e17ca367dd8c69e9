// Package stage materialises a staging directory of densely-numbered
// symlinks (or copies, when symlinks are refused) pointing at the frames a
// group validated for stacking. The external stacking engine reads that
// directory as its input sequence.
package stage
