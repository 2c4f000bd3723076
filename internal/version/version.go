package version

// Version is overridable at build time with
// -ldflags "-X github.com/appifylab/webinar-platform/internal/version.Version=...".
var Version = "1.0.0"
