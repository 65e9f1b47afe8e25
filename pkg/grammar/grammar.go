// Package grammar runs symbol rewriting systems that draw.
//
// A run has two phases. Expansion rewrites an axiom generation by
// generation, replacing every symbol by its rule's Expand string; it is
// pure string work and refuses to grow past a ceiling. Execution then walks
// the expanded program left to right, threading a State through each
// symbol's Execute function. Execute functions emit paths into named
// layers and may call other symbols' Execute directly through the Context.
package grammar

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"penplot/pkg/core"
	"penplot/pkg/geom"
)

// DefaultLimit caps expanded programs at about a million symbols.
const DefaultLimit = 1 << 20

// DefaultMaxDepth bounds nested Invoke calls.
const DefaultMaxDepth = 64

// ErrInvokeDepth is returned when Invoke calls nest deeper than the
// engine allows, which usually means two rules call each other forever.
var ErrInvokeDepth = errors.New("invoke depth exceeded")

// State is the turtle carried between symbols. It is passed and returned
// by value; Execute functions build a new State rather than mutate one.
type State struct {
	Position geom.Point
	Heading  float64
	Age      int
}

// Emitter receives paths. *geom.LayerSet implements it.
type Emitter interface {
	AppendTo(layer string, p geom.Path) error
}

// ExecuteFunc draws for one symbol and returns the next state.
type ExecuteFunc func(ctx *Context, s State) (State, error)

// Rule pairs a symbol's rewrite with its drawing behaviour. A nil Execute
// leaves the state unchanged and draws nothing.
type Rule struct {
	Expand  string
	Execute ExecuteFunc
}

// Rules maps symbols to rules. It is read-only once handed to an Engine.
type Rules map[rune]Rule

// Engine expands and executes programs over a fixed rule table.
type Engine struct {
	rules    Rules
	limit    int
	maxDepth int
	growth   map[rune]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit sets the expansion ceiling in symbols.
func WithLimit(n int) Option { return func(e *Engine) { e.limit = n } }

// WithMaxDepth sets how deeply Invoke calls may nest.
func WithMaxDepth(n int) Option { return func(e *Engine) { e.maxDepth = n } }

// New copies rules into an engine. Every symbol a rule expands to must
// itself have a rule; the first that does not is reported as a
// *core.SymbolError positioned within that rule's Expand string.
func New(rules Rules, opts ...Option) (*Engine, error) {
	e := &Engine{
		rules:    make(Rules, len(rules)),
		limit:    DefaultLimit,
		maxDepth: DefaultMaxDepth,
		growth:   make(map[rune]int, len(rules)),
	}
	for sym, r := range rules {
		e.rules[sym] = r
		e.growth[sym] = utf8.RuneCountInString(r.Expand)
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, sym := range slices.Sorted(maps.Keys(rules)) {
		pos := 0
		for _, r := range rules[sym].Expand {
			if _, ok := rules[r]; !ok {
				return nil, &core.SymbolError{Symbol: r, Position: pos}
			}
			pos++
		}
	}
	if err := core.FirstError(
		core.AtLeast("limit", e.limit, 1),
		core.AtLeast("max_depth", e.maxDepth, 1),
	); err != nil {
		return nil, err
	}
	return e, nil
}

// Limit returns the expansion ceiling.
func (e *Engine) Limit() int { return e.limit }

// Growth is the longest rule expansion, the worst-case factor by which one
// round can multiply a program's length.
func (e *Engine) Growth() int {
	var f int
	for _, n := range e.growth {
		f = max(f, n)
	}
	return f
}

// Expand performs generations+1 rewriting rounds on axiom: generation 0
// already applies the rules once. The length of every round is computed
// before the round is built, so an overflow is reported without
// allocating the oversized program.
func (e *Engine) Expand(axiom string, generations int) (string, error) {
	if err := core.AtLeast("generations", generations, 0); err != nil {
		return "", err
	}
	model := axiom
	for gen := 0; gen <= generations; gen++ {
		size, err := e.nextLen(model)
		if err != nil {
			return "", err
		}
		if size > e.limit {
			return "", &core.OverflowError{Length: size, Limit: e.limit, Generation: gen}
		}
		var b strings.Builder
		b.Grow(size)
		for _, sym := range model {
			b.WriteString(e.rules[sym].Expand)
		}
		model = b.String()
	}
	return model, nil
}

func (e *Engine) nextLen(model string) (int, error) {
	var size, pos int
	for _, sym := range model {
		n, ok := e.growth[sym]
		if !ok {
			return 0, &core.SymbolError{Symbol: sym, Position: pos}
		}
		if size > math.MaxInt-n {
			size = math.MaxInt
		} else {
			size += n
		}
		pos++
	}
	return size, nil
}

// Execute walks program left to right. After symbol i runs, the state's
// Age is set to i, so the next symbol sees how far into the program it is.
// Every symbol is checked before anything is drawn.
func (e *Engine) Execute(program string, initial State, out Emitter) (State, error) {
	pos := 0
	for _, sym := range program {
		if _, ok := e.rules[sym]; !ok {
			return initial, &core.SymbolError{Symbol: sym, Position: pos}
		}
		pos++
	}

	ctx := &Context{engine: e, out: out}
	state := initial
	i := 0
	for _, sym := range program {
		next, err := ctx.call(sym, state)
		if err != nil {
			return state, fmt.Errorf("symbol %q at %d: %w", sym, i, err)
		}
		next.Age = i
		state = next
		i++
	}
	return state, nil
}

// Run expands axiom and executes the result.
func (e *Engine) Run(axiom string, generations int, initial State, out Emitter) (State, error) {
	program, err := e.Expand(axiom, generations)
	if err != nil {
		return initial, err
	}
	return e.Execute(program, initial, out)
}

// Context is handed to Execute functions. It is only valid during the
// Execute call that received it.
type Context struct {
	engine *Engine
	out    Emitter
	depth  int
}

// Emit appends p to the named layer.
func (c *Context) Emit(layer string, p geom.Path) error {
	return c.out.AppendTo(layer, p)
}

// Invoke runs another symbol's Execute with s and returns its result. It
// is a plain nested call: no program symbols are consumed and the caller
// decides what to do with the returned state.
func (c *Context) Invoke(sym rune, s State) (State, error) {
	if _, ok := c.engine.rules[sym]; !ok {
		return s, &core.SymbolError{Symbol: sym, Position: -1}
	}
	if c.depth >= c.engine.maxDepth {
		return s, fmt.Errorf("%w: %d nested calls", ErrInvokeDepth, c.depth)
	}
	c.depth++
	defer func() { c.depth-- }()
	return c.call(sym, s)
}

// Depth reports how many Invoke calls enclose the current one.
func (c *Context) Depth() int { return c.depth }

func (c *Context) call(sym rune, s State) (State, error) {
	exec := c.engine.rules[sym].Execute
	if exec == nil {
		return s, nil
	}
	return exec(c, s)
}
