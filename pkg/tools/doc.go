// Package tools exposes game operations as callable tools.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/guessr/pkg/tools/toolbox]: Tool type and ToolBox for registering, listing, and calling tools
//   - [github.com/germanamz/guessr/pkg/tools/mcpserver]: MCP server using the official MCP Go SDK for exposing a ToolBox over the MCP protocol
//
// The toolbox sub-package is the foundation layer; mcpserver depends on it for
// the Tool type. The game tools themselves live in pkg/gametools.
package tools
