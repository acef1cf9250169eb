package xai

import (
	"github.com/petal-labs/perle/core"
	"github.com/petal-labs/perle/providers"
)

func init() {
	providers.Register(providers.XAI, func(apiKey string, s providers.Settings) core.Provider {
		var opts []Option
		if s.BaseURL != "" {
			opts = append(opts, WithBaseURL(s.BaseURL))
		}
		if s.HTTPClient != nil {
			opts = append(opts, WithHTTPClient(s.HTTPClient))
		}
		for k, v := range s.Headers {
			opts = append(opts, WithHeader(k, v))
		}
		return New(apiKey, opts...)
	})
}
