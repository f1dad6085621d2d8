package llm

import (
	"go.uber.org/fx"
)

// FXModule wires the LLM client into Fx.
var FXModule = fx.Module(
	"llm",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
		func(c *Client) Completer { return c },
	),
)
