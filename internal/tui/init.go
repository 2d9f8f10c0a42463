package tui

import (
	"github.com/studiowebux/redis-nav/internal/editorbridge"
	"github.com/studiowebux/redis-nav/internal/history"
	"github.com/studiowebux/redis-nav/internal/protection"
	"github.com/studiowebux/redis-nav/internal/tree"
	"github.com/studiowebux/redis-nav/internal/worker"
)

// Options configures a Run invocation.
type Options struct {
	Bus        *worker.Bus
	Delimiters []rune
	Policy     *protection.Policy
	Editor     *editorbridge.Bridge
	History    *history.Manager
	Profile    string
	Readonly   bool
	AppVersion string
}

// Run constructs the model from opts and blocks until the program exits.
func Run(opts Options) error {
	builder := tree.NewBuilder(opts.Delimiters)
	m := New(opts.Bus, builder, opts.Policy, opts.Editor, opts.History, opts.Profile, opts.Readonly, opts.AppVersion)
	return m.Run()
}
