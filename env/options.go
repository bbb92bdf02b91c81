package env

import (
	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/gas"
	"github.com/caffeineduck/ecall/trace"
)

// Option configures table construction.
type Option func(*Config)

// WithUnstable includes descriptors not marked Stable. Production builds
// leave this off so experimental syscalls are simply absent.
func WithUnstable() Option {
	return func(c *Config) {
		c.IncludeUnstable = true
	}
}

// WithFeature enables a named feature gate consulted by descriptor
// guards.
func WithFeature(name string) Option {
	return func(c *Config) {
		if c.Features == nil {
			c.Features = make(map[string]bool)
		}
		c.Features[name] = true
	}
}

// WithConvention overrides the register calling convention. The default
// is the six-register convention.
func WithConvention(conv abi.Convention) Option {
	return func(c *Config) {
		c.Convention = conv
	}
}

// WithBaseCost overrides the flat per-call overhead charge.
func WithBaseCost(cost gas.Cost) Option {
	return func(c *Config) {
		c.BaseCost = cost
	}
}

// WithStrace appends one formatted line per host call to the execution
// context's debug buffer, strace style.
func WithStrace() Option {
	return func(c *Config) {
		c.strace = true
	}
}

// WithTraceHook registers a hook observing every invoked syscall. Hooks
// run after the handler body and cannot affect the call.
func WithTraceHook(h trace.Hook) Option {
	return func(c *Config) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

func defaultConfig() Config {
	return Config{
		Convention: abi.DefaultConvention(),
		BaseCost:   DefaultBaseCost,
	}
}
