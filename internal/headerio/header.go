// Package headerio defines the header-reader/writer collaborator contract
// the pipeline core depends on, plus a concrete FITS implementation.
//
// The core never assumes a wire format for the metadata header; every field
// it needs comes through this typed accessor interface. Swapping in a
// different container format means implementing Header/Writer, nothing
// else in the pipeline changes.
package headerio

import (
	"time"

	"darkmaster/internal/frame"
)

// Header exposes the fields the core pipeline needs from an input frame's
// metadata, or from an existing master's header. Every getter returns
// (value, ok); ok is false when the field is absent so callers can decide
// how to handle missing data without the collaborator editorializing.
type Header interface {
	AcquiredAt() (time.Time, bool)
	CameraID() (string, bool)
	Binning() (frame.Binning, bool)
	Gain() (int, bool)
	ExposureS() (float64, bool)
	TemperatureC() (float64, bool)
	IsCFA() (bool, bool)
	KindHint() (frame.Kind, bool)

	// NFramesUsed and StackSignature are only meaningful on a master's own
	// header, written by HeaderWriter after a successful stack.
	NFramesUsed() (int, bool)
	StackSignature() (string, bool)
}

// Reader opens a frame file and returns its Header.
type Reader interface {
	Read(path string) (Header, error)
}

// Stamp is the set of fields HeaderWriter records into a freshly produced
// master, per the group it was built from.
type Stamp struct {
	Key            frame.GroupKey
	AcquiredAt     time.Time
	NFramesUsed    int
	StackSignature string
}

// Writer opens an existing file in place and stamps provenance fields into
// its header.
type Writer interface {
	Stamp(path string, stamp Stamp) error
}
