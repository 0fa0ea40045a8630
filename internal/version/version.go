// ABOUTME: Version information for the amrnb tools
// ABOUTME: Shared by the CLI and log output
package version

import "fmt"

const (
	Version      = "0.1.0"
	Product      = "amrnb-go"
	Manufacturer = "Resonate Protocol"
)

// String formats the version line printed by the CLI
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}
