// ABOUTME: AMR-NB single-channel file storage format (RFC 4867 section 5)
// ABOUTME: Reads and writes "#!AMR\n" files made of IETF-framed speech frames
// Package storage reads and writes the AMR-NB file format.
//
// A file is the magic "#!AMR\n" followed by frames, each a header byte
// (frame type in bits 3-6) and the octet-aligned speech bits for that type.
//
// Example:
//
//	w, err := storage.NewWriter(f)
//	err = w.WriteFrame(frame)
//
//	r, err := storage.NewReader(f)
//	frame, err := r.ReadFrame() // io.EOF at end of file
package storage
