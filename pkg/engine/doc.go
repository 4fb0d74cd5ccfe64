// Package engine is the composition root that wires configuration, logging,
// randomness and game sessions together and exposes them through a
// frontend-agnostic API. Frontends (the terminal UI, the MCP server) interact
// with Engine and Session types, observe activity through an EventBus, and
// never drive a guess.Session directly.
package engine
