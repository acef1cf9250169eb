// Package core defines the completion contract shared by the Perle answer
// engine and its vendor adapters.
//
// # Client and Provider
//
// [Provider] is the uniform adapter interface. Each vendor package owns a
// fixed table from the caller-facing [LLMModel] to its own [ModelID], plus a
// [Profile] of sampling constants, an output ceiling and a deadline.
//
// [Client] wraps a Provider and adds telemetry and the timeout guard:
//
//	provider := openai.New(os.Getenv("OPENAI_API_KEY"))
//	client := core.NewClient(provider, core.WithTelemetry(hook))
//
//	res := provider.ResolveModel(core.ModelGPT4o)
//	resp, err := client.Chat(res.Model).
//	    System("You are Perle.").
//	    User("What is a quasar?").
//	    Sampling(provider.Profile().Sampling).
//	    MaxTokens(2500).
//	    GetResponse(ctx)
//
// # Timeouts
//
// Every call is a single attempt raced against a deadline by [Guard]. When the
// deadline elapses the call fails with [ErrTimeout]; the vendor request is
// abandoned rather than cancelled. There is no retry.
//
// # Errors
//
// Provider failures are [*ProviderError] values wrapping a sentinel such as
// [ErrRateLimited]. Missing credentials are [*ConfigError]. Use [ErrorCode] to
// obtain the stable code a caller branches on.
package core
