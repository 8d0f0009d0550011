package version

// Version and BuildId are overridden at release time via -ldflags.
var (
	Version = "1.0.0"
	BuildId = "local"
)
