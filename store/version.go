package store

import (
	"runtime/debug"
	"sync"
)

const versionUnknown = "unknown"

// Version returns the version identifier of the named backend's engine
// library, taken from the build info compiled into the binary. It is a
// pure diagnostic: unknown backends and binaries built without module
// information yield "unknown", never an error.
func Version(name string) string {
	d, ok := lookup(name)
	if !ok {
		return versionUnknown
	}
	if v := depVersions()[d.ModulePath]; v != "" {
		return v
	}
	return versionUnknown
}

// depVersions maps dependency module paths to their versions, read from
// the running binary once.
var depVersions = sync.OnceValue(func() map[string]string {
	vs := make(map[string]string)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return vs
	}
	for _, m := range info.Deps {
		if m.Replace != nil {
			m = m.Replace
		}
		vs[m.Path] = m.Version
	}
	return vs
})
