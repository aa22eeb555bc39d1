package version

// Application version information, overridden at build time via ldflags.
var (
	Version = "dev"
	Commit  = ""
)

// String renders the version with the commit when one is baked in.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
