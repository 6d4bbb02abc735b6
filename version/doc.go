// Package version exposes the build metadata stamped into the binary.
//
// Version, commit, and build time come from -ldflags:
//
//	go build -ldflags "-X github.com/partsearch/partsearch/version.Version=1.0.0"
//
// When unset, they fall back to the module info the Go toolchain embeds.
package version
