// Package frames decodes video frames through an ffmpeg pipe.
//
// Frames are scaled to a fixed analysis size and streamed as raw RGB24
// records, so decoding never touches disk and the caller receives each frame
// as an *image.RGBA together with its 1-based position in the source stream.
// SampleIndices picks which positions to keep when only a subset of frames is
// analyzed.
package frames
