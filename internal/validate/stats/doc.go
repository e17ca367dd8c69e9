// Package stats provides the robust-statistics kernels the Validator needs
// to summarise a frame's pixel array: an O(n) selection for order
// statistics (median, MAD, percentiles) and a single-pass Welford
// accumulator for mean and standard deviation.
package stats
