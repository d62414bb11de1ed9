package types

// Version is the application version, overridden at build time via ldflags
var Version = "0.1.0"

// AppName is the CLI binary name
const AppName = "mcpublish"

// UserAgent is sent with every outbound API request
var UserAgent = AppName + "/" + Version + " (+https://github.com/mcpublish/mcpublish)"
