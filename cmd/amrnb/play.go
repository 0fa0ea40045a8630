// ABOUTME: play subcommand
// ABOUTME: Decodes an .amr file and plays it, optionally under a TUI with volume keys
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Resonate-Protocol/amrnb-go/internal/config"
	"github.com/Resonate-Protocol/amrnb-go/internal/ui"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio"
	"github.com/Resonate-Protocol/amrnb-go/pkg/audio/output"
)

// playChunk is how much audio is written between volume checks
const playChunk = amrnb.SampleRate / 10

func runPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	in := fs.String("in", "", "Input .amr file")
	library := fs.String("lib", "", "Shared library exporting the AMR-NB codec")
	volume := fs.Int("volume", cfg.Volume, "Playback volume (0-100)")
	tui := fs.Bool("tui", false, "Show a playback TUI with volume controls")
	fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("-in is required")
	}

	d, err := decodeFile(cfg, *in, *library)
	if err != nil {
		return err
	}

	out := output.NewOto(*volume)
	if err := out.Open(audio.NarrowbandRate, 1); err != nil {
		return err
	}
	defer out.Close()

	if !*tui {
		if err := playSamples(out, d.Samples, nil, nil); err != nil {
			return err
		}
		out.Drain()
		return nil
	}

	// Log lines would tear the alternate screen
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	volCtrl := ui.NewVolumeControl()
	prog := ui.Run(volCtrl, out.GetVolume())

	done := make(chan struct{})
	go func() {
		defer close(done)
		prog.Send(ui.StatusMsg{
			File:     filepath.Base(*in),
			Mode:     d.Mode,
			Frames:   d.Frames,
			Duration: d.Duration(),
		})
		err := playSamples(out, d.Samples, volCtrl, func(played time.Duration) {
			prog.Send(ui.StatusMsg{Played: played})
		})
		if err == nil {
			out.Drain()
		}
		prog.Send(ui.StatusMsg{Err: err, Done: true})
	}()

	_, err = prog.Run()

	// Stop a loop that is still writing after the TUI quit
	select {
	case volCtrl.Quit <- ui.QuitMsg{}:
	default:
	}
	<-done
	return err
}

// playSamples writes samples in chunks, applying volume changes between
// chunks and stopping early on quit. progress may be nil.
func playSamples(out output.Output, samples []int32, volCtrl *ui.VolumeControl, progress func(time.Duration)) error {
	var changes <-chan ui.VolumeChangeMsg
	var quit <-chan ui.QuitMsg
	if volCtrl != nil {
		changes = volCtrl.Changes
		quit = volCtrl.Quit
	}

	for offset := 0; offset < len(samples); offset += playChunk {
	drain:
		for {
			select {
			case msg := <-changes:
				out.SetVolume(msg.Volume)
				out.SetMuted(msg.Muted)
			case <-quit:
				return nil
			default:
				break drain
			}
		}

		end := min(offset+playChunk, len(samples))
		if err := out.Write(samples[offset:end]); err != nil {
			return err
		}
		if progress != nil {
			progress(time.Duration(end) * time.Second / amrnb.SampleRate)
		}
	}
	return nil
}
