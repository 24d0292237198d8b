package ruggy

// Version is the semantic version of the wrapper, populated at build time via
// ldflags. In development it defaults to the placeholder below.
var Version = "v0.0.0-dev"

// WrapperVersion returns the wrapper's semantic version.
func WrapperVersion() string {
	return Version
}
