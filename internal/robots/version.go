package robots

// Version is the engine version reported by the version command and the
// MCP engine resource.
const Version = "1.2.0"
