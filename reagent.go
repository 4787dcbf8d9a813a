// Package reagent provides a high-level façade over the agent loops, the
// tool registry and the model boundary. Most applications interact with this
// package by:
//  1. Creating a Reagent via New() with a model implementation
//  2. Optionally registering extra tools (calculator and search are built in)
//  3. Constructing either loop variant and running queries through it
//
// The façade keeps setup ergonomics concise while delegating all loop
// behavior to the agent package.
package reagent

import (
	"github.com/reagent-dev/reagent/agent"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/tool"
)

// Options configures the Reagent instance.
type Options struct {
	// MaxIterations bounds the think→act→observe rounds per query.
	MaxIterations int

	// Tools replaces the default tool set (calculator, search) entirely.
	Tools []tool.Tool

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Reagent aggregates the model boundary, the configured tool set and the
// shared loop options.
type Reagent struct {
	llm      model.Model
	registry *tool.Registry
	opts     Options
}

// New creates a Reagent instance with optional overrides. The default tool
// set contains the built-in calculator and search tools.
func New(llm model.Model, optFns ...func(o *Options)) *Reagent {
	opts := Options{
		MaxIterations: agent.DefaultMaxIterations,
		Tools:         []tool.Tool{tool.NewCalculator(), tool.NewSearch()},
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Reagent{
		llm:      llm,
		registry: tool.NewRegistry(logging.ForComponent(opts.Logger, "tool"), opts.Tools...),
		opts:     opts,
	}
}

// RegisterTool adds a tool to the configured set.
func (r *Reagent) RegisterTool(t tool.Tool) { r.registry.Register(t) }

// Registry returns the configured tool registry.
func (r *Reagent) Registry() *tool.Registry { return r.registry }

// ChainOfThought constructs the free-text loop variant.
func (r *Reagent) ChainOfThought() *agent.ChainOfThought {
	return agent.NewChainOfThought(r.llm, r.registry, func(o *agent.ChainOfThoughtOptions) {
		o.MaxIterations = r.opts.MaxIterations
		o.Logger = logging.ForComponent(r.opts.Logger, "agent")
	})
}

// FunctionCall constructs the structured streaming loop variant.
func (r *Reagent) FunctionCall() *agent.FunctionCall {
	return agent.NewFunctionCall(r.llm, r.registry, func(o *agent.FunctionCallOptions) {
		o.MaxIterations = r.opts.MaxIterations
		o.Logger = logging.ForComponent(r.opts.Logger, "agent")
	})
}
