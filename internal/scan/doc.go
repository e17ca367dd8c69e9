// Package scan walks input directories, reads each candidate file's header
// through the headerio collaborator, and yields the FrameInfo records that
// survive kind inference and the run's age window.
package scan
