// ABOUTME: Entry point for the amrnb command line tool
// ABOUTME: Probes, encodes, decodes and plays AMR-NB through the platform codec
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Resonate-Protocol/amrnb-go/internal/config"
	"github.com/Resonate-Protocol/amrnb-go/internal/cpufeature"
	"github.com/Resonate-Protocol/amrnb-go/internal/version"
	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
)

const usage = `usage: amrnb <command> [flags]

commands:
  probe    bind the codec library and report the first missing symbol
  encode   encode PCM, MP3 or FLAC input to an .amr file
  decode   decode an .amr file to raw 16-bit 8kHz mono PCM
  play     decode an .amr file and play it (-tui for volume controls)
  cpu      report the SIMD capability of this CPU
  version  print version information
`

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}
	cfg, err := config.NewConfigFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "probe":
		err = runProbe(cfg, args)
	case "encode":
		err = runEncode(cfg, args)
	case "decode":
		err = runDecode(cfg, args)
	case "play":
		err = runPlay(cfg, args)
	case "cpu":
		f := cpufeature.Probe()
		fmt.Printf("arch=%s extension=%s present=%v\n", f.Arch, f.Extension, f.Present)
	case "version":
		fmt.Println(version.String())
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func runProbe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	library := fs.String("lib", cfg.Library, "Shared library exporting the AMR-NB codec")
	fs.Parse(args)

	b, err := amrnb.Open(*library)
	if err != nil {
		if name, ok := amrnb.MissingName(err); ok {
			fmt.Printf("missing %s\n", name)
		}
		return err
	}
	defer b.Close()

	fmt.Printf("%s: all codec symbols bound\n", b.Name())
	if !cpufeature.HasSIMD() {
		log.Printf("CPU lacks %s; platform codec builds may run slowly", cpufeature.Probe().Extension)
	}
	return nil
}

// openBinding binds the configured library, honouring a -lib override
func openBinding(cfg *config.Config, library string) (*amrnb.Binding, error) {
	if library == "" {
		library = cfg.Library
	}
	return amrnb.Open(library)
}
