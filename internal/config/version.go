package config

// Version is the hostgraph binary version.
// Set at build time via: -ldflags "-X github.com/hostgraph/hostgraph/internal/config.Version=<tag>"
var Version = "dev"
