// ABOUTME: Runtime binding to a platform AMR narrowband speech codec
// ABOUTME: Resolves codec entry points from a shared library and forwards calls
// Package amrnb binds the AMR-NB codec entry points exported by a platform
// shared library (libstagefright.so on Android) at run time.
//
// Nothing here implements the speech codec. Open loads the library with
// global symbol visibility and resolves six symbols in a fixed order:
//
//	AMRDecode, Speech_Decode_Frame_exit, GSMInitDecode,
//	AMREncodeInit, AMREncodeExit, AMREncode
//
// The first symbol that cannot be found is reported in a *BindError. A
// *Binding is only ever returned when all six resolved, so every forwarding
// method is safe to call on it.
//
// Encoded frames always come back in IETF framing: Encode asks the native
// encoder for WMF output and rewrites the first byte as frameType<<3, whatever
// format the caller requested.
//
// Example:
//
//	b, err := amrnb.Open(amrnb.DefaultLibrary)
//	if err != nil {
//	    name, _ := amrnb.MissingName(err)
//	    log.Fatalf("AMR-NB unavailable, missing %s", name)
//	}
//	var enc amrnb.EncoderState
//	b.EncodeInit(&enc, false)
//	defer b.EncodeExit(&enc)
//	n, ft, err := b.Encode(&enc, amrnb.MR122, pcm, out, amrnb.OutputIETF)
package amrnb
