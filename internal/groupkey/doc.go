// Package groupkey builds the acquisition-equivalence key frames are
// partitioned by, and derives the on-disk master filename for a key.
package groupkey
