// Package updatepolicy decides, for a group and its (possibly absent)
// existing master, whether a run should rebuild the master or skip it.
package updatepolicy
