// ABOUTME: encode subcommand
// ABOUTME: Reads PCM, MP3 or FLAC, converts to 8kHz mono and writes an .amr file
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/Resonate-Protocol/amrnb-go/internal/config"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb/storage"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/encode"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/resample"
)

func runEncode(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "Input file (.pcm/.raw, .mp3 or .flac)")
	out := fs.String("out", "", "Output .amr file")
	library := fs.String("lib", "", "Shared library exporting the AMR-NB codec")
	modeName := fs.String("mode", "", "Encoder mode (MR475..MR122 or kbit/s), default from AMRNB_MODE")
	dtx := fs.Bool("dtx", cfg.DTX, "Enable discontinuous transmission")
	rate := fs.Int("rate", audio.NarrowbandRate, "Sample rate of raw PCM input")
	channels := fs.Int("channels", 1, "Channel count of raw PCM input")
	bits := fs.Int("bits", 16, "Bit depth of raw PCM input (8, 16 or 24)")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return fmt.Errorf("-in and -out are required")
	}
	mode := cfg.EncoderMode()
	if *modeName != "" {
		m, err := amrnb.ParseMode(*modeName)
		if err != nil {
			return err
		}
		mode = m
	}

	samples, format, err := readInput(*in, audio.Format{
		Codec:      audio.CodecPCM,
		SampleRate: *rate,
		Channels:   *channels,
		BitDepth:   *bits,
	})
	if err != nil {
		return err
	}
	log.Printf("Read %s: %s, %d samples", *in, format, len(samples))

	samples = toNarrowband(samples, format)

	b, err := openBinding(cfg, *library)
	if err != nil {
		return err
	}
	defer b.Close()

	encoder, err := encode.NewAMR(b, audio.Narrowband(audio.CodecAMRNB), mode, *dtx)
	if err != nil {
		return err
	}
	defer encoder.Close()

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", *out, err)
	}
	defer f.Close()

	w, err := storage.NewWriter(f)
	if err != nil {
		return err
	}

	frames, err := encoder.EncodeFrames(samples)
	if err != nil {
		return err
	}
	tail, err := encoder.Flush()
	if err != nil {
		return err
	}
	if tail != nil {
		frames = append(frames, tail)
	}
	for _, frame := range frames {
		if err := w.WriteFrame(frame); err != nil {
			return err
		}
	}

	if encoder.Frames() != w.Frames() {
		return fmt.Errorf("encoded %d frames but wrote %d", encoder.Frames(), w.Frames())
	}
	log.Printf("Wrote %s: %d frames at %s (%d bit/s)", *out, w.Frames(), mode, mode.Bitrate())
	return f.Close()
}

// readInput decodes a whole input file, picking the decoder by extension
func readInput(path string, raw audio.Format) ([]int32, audio.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, audio.Format{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		d, err := decode.NewMP3(audio.Format{Codec: audio.CodecMP3})
		if err != nil {
			return nil, audio.Format{}, err
		}
		return decodeAll(d, data)
	case ".flac":
		d, err := decode.NewFLAC(audio.Format{Codec: audio.CodecFLAC})
		if err != nil {
			return nil, audio.Format{}, err
		}
		return decodeAll(d, data)
	default:
		d, err := decode.NewPCM(raw)
		if err != nil {
			return nil, audio.Format{}, err
		}
		defer d.Close()
		samples, err := d.Decode(data)
		return samples, raw, err
	}
}

type reportingDecoder interface {
	decode.Decoder
	decode.FormatReporter
}

func decodeAll(d reportingDecoder, data []byte) ([]int32, audio.Format, error) {
	defer d.Close()
	samples, err := d.Decode(data)
	if err != nil {
		return nil, audio.Format{}, err
	}
	return samples, d.OutputFormat(), nil
}

// toNarrowband downmixes to mono and resamples to 8kHz
func toNarrowband(samples []int32, format audio.Format) []int32 {
	mono := audio.Downmix(samples, format.Channels)
	if format.SampleRate == audio.NarrowbandRate {
		return mono
	}

	r := resample.New(format.SampleRate, audio.NarrowbandRate, 1)
	out := make([]int32, r.OutputSamplesNeeded(len(mono)))
	n := r.Resample(mono, out)
	return out[:n]
}
