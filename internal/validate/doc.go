// Package validate computes per-frame image statistics and applies the
// four-test rejection battery, producing the accepted/rejected split a
// group's Build decision is staged from.
package validate
