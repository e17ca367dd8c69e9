package frame

import "time"

// Kind classifies a frame by its acquisition intent.
type Kind string

const (
	KindDark  Kind = "dark"
	KindBias  Kind = "bias"
	KindOther Kind = "other"
)

// Binning is the horizontal/vertical pixel-binning factor pair.
type Binning struct {
	H int
	V int
}

// FrameInfo is a single input frame's metadata, immutable after the Scanner
// emits it.
type FrameInfo struct {
	Path         string
	AcquiredAt   time.Time
	CameraID     string
	Binning      Binning
	Gain         int
	ExposureS    float64
	TemperatureC float64
	IsCFA        bool
	Kind         Kind

	// Stats is populated lazily, only once the Validator reads this frame's
	// pixel data. Zero value means "not yet computed".
	Stats ImageStats
}

// GroupKey is the acquisition-equivalence tuple: frames with equal keys may
// be stacked together into the same master.
type GroupKey struct {
	CameraID     string
	Binning      Binning
	Gain         int
	ExposureS    float64
	TemperatureC float64 // already quantised
	IsCFA        bool
}

// Group is an ordered set of frames sharing one GroupKey, sorted by
// AcquiredAt descending.
type Group struct {
	Key    GroupKey
	Frames []FrameInfo
}

// ImageStats is the robust statistical summary of a single frame's pixel
// array, used by the Validator's four-test battery.
type ImageStats struct {
	Median            float64
	MAD               float64
	Mean              float64
	Std               float64
	P10               float64
	P90               float64
	P99               float64
	MADRatio          float64
	CentralDispersion float64
	HotPixelFraction  float64
	HotPixelThreshold float64
	// Valid is false when Median <= 0, in which case the ratio fields above
	// are meaningless and the frame must be rejected outright.
	Valid bool
}

// RejectReason names why a frame (or a whole group) was rejected.
type RejectReason string

const (
	ReasonMedianCeiling        RejectReason = "MedianCeiling"
	ReasonHotPixelFraction     RejectReason = "HotPixelFraction"
	ReasonRelativeNoise        RejectReason = "RelativeNoise"
	ReasonCentralDispersion    RejectReason = "CentralDispersion"
	ReasonUnreadablePixels     RejectReason = "UnreadablePixels"
	ReasonDegenerateStatistics RejectReason = "DegenerateStatistics"
	ReasonInsufficientValid    RejectReason = "insufficient-valid-frames"
)


// RejectedFrame pairs a rejected frame with the reason and the statistics
// that produced it, carried through to the Reporter.
type RejectedFrame struct {
	Frame  FrameInfo
	Reason RejectReason
	Stats  ImageStats
}

// Master describes the existing stacked master frame for a GroupKey, as
// read from its header.
type Master struct {
	Path            string
	CreatedAt       time.Time
	NFramesUsed     int
	StackSignature  string
}
