// Package buildinfo reports the version of the configomatic binary.
//
// Version, Commit and BuildTime may be injected with ldflags:
//
//	go build -ldflags "-X github.com/azimuth-cloud/configomatic/internal/infra/buildinfo.Version=v1.0.0"
//
// Values left at their defaults are filled from the module and VCS
// information the Go toolchain embeds in the binary.
package buildinfo
