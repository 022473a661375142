// Copyright © 2024 The NeoLisp authors

package cmd

import (
	"fmt"

	"github.com/neolisp/nl/lisp"
	"github.com/neolisp/nl/lisp/lisplib"
	"github.com/neolisp/nl/parser"
)

// Option configures an exported command factory (RunCommand, ReplCommand,
// DocCommand, LSPCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	loaders []lisp.Loader
	configs []lisp.Config
}

func newCmdConfig(opts ...Option) *cmdConfig {
	cfg := &cmdConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLoader runs loader on every scope created by the command, after the
// builtin library is loaded.  Embedders use it to register their own forms.
func WithLoader(loader lisp.Loader) Option {
	return func(c *cmdConfig) { c.loaders = append(c.loaders, loader) }
}

// WithConfig applies config to every scope created by the command, after
// the command's own configuration.
func WithConfig(config lisp.Config) Option {
	return func(c *cmdConfig) { c.configs = append(c.configs, config) }
}

// newScope returns a scope holding the builtin library and the embedder's
// forms.  Configs are applied before those of the embedder.
func (c *cmdConfig) newScope(configs ...lisp.Config) (*lisp.Scope, error) {
	all := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithLibrary(&lisp.FileSystemLibrary{}),
		lisp.WithLogger(logger),
	}
	all = append(all, configs...)
	all = append(all, c.configs...)
	s, err := lisp.NewInitializedScope(all...)
	if err != nil {
		return nil, fmt.Errorf("language initialization failure: %w", err)
	}
	if err := lisplib.LoadLibrary(s); err != nil {
		return nil, fmt.Errorf("library initialization failure: %w", err)
	}
	for _, load := range c.loaders {
		if err := load(s); err != nil {
			return nil, fmt.Errorf("loader failure: %w", err)
		}
	}
	return s, nil
}
