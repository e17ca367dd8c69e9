// Package frame defines the data model shared by every pipeline stage:
// FrameInfo, GroupKey, Group, Master, ImageStats, and RejectedFrame.
//
// Types here are plain values with no stage-specific behaviour attached;
// each pipeline stage owns its output exclusively until it hands it to the
// next stage (see darkmaster's stage-ownership rule).
package frame
