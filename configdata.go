// Package agentcard provides embedded assets for the agentcard renderer.
//
// The root package exists solely to embed [config.default.toml] via
// [DefaultConfigTOML]. The CLI writes it out when asked to initialize a
// config file.
package agentcard

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time. `agentcard -init` copies it to the config path.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
