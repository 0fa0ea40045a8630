// ABOUTME: decode subcommand
// ABOUTME: Turns an .amr file into raw 16-bit PCM
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Resonate-Protocol/amrnb-go/internal/config"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb/storage"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/decode"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/encode"
)

func runDecode(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "Input .amr file")
	out := fs.String("out", "", "Output raw PCM file (s16le, 8kHz mono)")
	library := fs.String("lib", "", "Shared library exporting the AMR-NB codec")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return fmt.Errorf("-in and -out are required")
	}

	d, err := decodeFile(cfg, *in, *library)
	if err != nil {
		return err
	}
	samples := d.Samples

	pcm, err := encode.NewPCM(audio.Narrowband(audio.CodecPCM))
	if err != nil {
		return err
	}
	defer pcm.Close()

	data, err := pcm.Encode(samples)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}

	log.Printf("Wrote %s: %d samples", *out, len(samples))
	return nil
}

// decoded is the result of decoding a whole .amr file
type decoded struct {
	Samples []int32
	Frames  int
	// Mode names the frame type of the first speech frame
	Mode string
}

func (d *decoded) Duration() time.Duration {
	return time.Duration(len(d.Samples)) * time.Second / amrnb.SampleRate
}

// decodeFile reads every frame of an .amr file and decodes it
func decodeFile(cfg *config.Config, path, library string) (*decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := storage.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	b, err := openBinding(cfg, library)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	decoder, err := decode.NewAMR(b, audio.Narrowband(audio.CodecAMRNB))
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	d := &decoded{}
	for {
		frame, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if ft := amrnb.UnpackHeader(frame[0]); d.Mode == "" && ft < amrnb.FrameSID {
			d.Mode = ft.String()
		}
		pcm, err := decoder.Decode(frame)
		if err != nil {
			return nil, err
		}
		d.Samples = append(d.Samples, pcm...)
	}
	d.Frames = decoder.Frames()

	log.Printf("Decoded %s: %d of %d frames, %.2fs", path, d.Frames, r.Frames(), d.Duration().Seconds())
	return d, nil
}
