// ABOUTME: Configuration package for the amrnb tools
// ABOUTME: Reads AMRNB_* settings from the environment and optional .env files
// Package config loads codec settings from the environment.
//
//	AMRNB_LIBRARY  shared library exporting the codec (default libstagefright.so)
//	AMRNB_MODE     encoder mode, name or kbit/s (default MR122)
//	AMRNB_DTX      discontinuous transmission (default false)
//	AMRNB_VOLUME   playback volume 0-100 (default 100)
package config
