package placify

// Version is the release of the placify module. Overridden at build time with
// -ldflags "-X github.com/nocap-placify/placify.Version=...".
var Version = "0.1.0"
