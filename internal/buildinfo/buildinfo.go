// Package buildinfo holds the release version shared by the binary, the
// default configuration, and the upstream client.
package buildinfo

// Version is overridden at link time with
// -ldflags "-X pokemon-mcp/internal/buildinfo.Version=<v>".
var Version = "0.3.0"

// UserAgent is the User-Agent sent to PokeAPI for the given version.
func UserAgent(version string) string {
	return "pokemon-mcp/" + version
}
