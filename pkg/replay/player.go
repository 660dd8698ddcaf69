package replay

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/yaklabco/mdlive/internal/configloader"
	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/block"
	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/device"
	"github.com/yaklabco/mdlive/pkg/editor"
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/surface"
)

// ErrNoBlock is returned when a step addresses a block that does not exist.
var ErrNoBlock = errors.New("no such block")

//nolint:gochecknoglobals // Read-only lookup table.
var arrowKeys = map[string]string{
	"left":  device.KeyArrowLeft,
	"right": device.KeyArrowRight,
	"up":    device.KeyArrowUp,
	"down":  device.KeyArrowDown,
}

// keyBackspace is the key reported for deletions.
const keyBackspace = "Backspace"

// Result is the outcome of playing one script.
type Result struct {
	Name     string
	Path     string
	Markdown string
	HTML     string

	// Blocks is a snapshot of the document after the last step.
	Blocks []block.Block

	// Active is the id of the active block after the last step.
	Active string

	// Events counts the editor events dispatched while playing.
	Events map[event.Name]int

	// Steps is the number of steps that were played.
	Steps int

	// Mismatches lists the expectations the run did not meet.
	Mismatches []string

	// Expect is the script's expectation block, nil when it had none.
	Expect *Expect
}

// Passed reports whether every expectation was met.
func (r *Result) Passed() bool {
	return r != nil && len(r.Mismatches) == 0
}

// Player plays scripts against fresh editors.
type Player struct {
	cfg    *config.Config
	logger *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithConfig sets the base configuration scripts are played with.
func WithConfig(cfg *config.Config) Option {
	return func(p *Player) {
		if cfg != nil {
			p.cfg = cfg
		}
	}
}

// WithLogger sets the logger passed on to every editor. Without it Play
// uses the logger carried by its context.
func WithLogger(logger *log.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlayer creates a Player.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		cfg: config.NewConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// session is one editor being driven by a script.
type session struct {
	dom    *surface.DOM
	target *device.Element
	ed     *editor.Editor
	codec  *codec.Codec
}

// Play runs script on a new editor and collects its output. A step that
// cannot be applied aborts the run with an error; unmet expectations are
// reported in Result.Mismatches.
func (p *Player) Play(ctx context.Context, script *Script) (*Result, error) {
	cfg := configloader.MergeAll(p.cfg, script.Config)
	logger := p.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	root, err := surface.ParseContainer(`<div></div>`)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	dom := surface.NewDOM(root)
	target := device.NewElement()

	ed, err := editor.Initialize(dom, target,
		editor.WithConfig(cfg),
		editor.WithLogger(logger.With(logging.FieldPath, script.Name)))
	if err != nil {
		return nil, fmt.Errorf("initialize editor: %w", err)
	}
	defer ed.Destroy()

	result := &Result{
		Name:   script.Name,
		Path:   script.Path,
		Events: make(map[event.Name]int),
		Expect: script.Expect,
	}
	for _, name := range []event.Name{
		event.NameBlockChanged, event.NameLineCommitted,
		event.NameMarkupReparsed, event.NameArrowPressed,
	} {
		ed.Events().Subscribe(name, func(event.Event) error {
			result.Events[name]++
			return nil
		})
	}

	s := &session{dom: dom, target: target, ed: ed, codec: codec.New(dom)}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay cancelled: %w", err)
		}
		if err := s.apply(step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action(), err)
		}
		result.Steps++
	}

	result.Markdown = ed.MarkdownSource()
	result.HTML = ed.RenderedMarkup()
	result.Active = ed.Active().ID
	for _, b := range ed.Document().Blocks() {
		result.Blocks = append(result.Blocks, *b)
	}
	if script.Expect != nil {
		result.Mismatches = script.Expect.check(result)
	}

	logger.Debug("script played",
		logging.FieldPath, script.Name,
		logging.FieldBlocks, len(result.Blocks))

	return result, nil
}

func (s *session) apply(step Step) error {
	switch step.Action() {
	case "type":
		return s.typeText(*step.Type)
	case "enter":
		for range step.Enter {
			s.press(device.KeyEnter, nil)
		}
	case "backspace":
		for range step.Backspace {
			if err := s.backspace(); err != nil {
				return err
			}
		}
	case "click":
		el, err := s.element(step.Click)
		if err != nil {
			return err
		}
		s.codec.MoveCursor(el, step.Click.Offset)
		s.target.Fire(device.NewEvent(device.Click, ""))
	case "select":
		el, err := s.element(step.Select)
		if err != nil {
			return err
		}
		state := codec.Caret(step.Select.Offset)
		if step.Select.End != nil {
			state.End = *step.Select.End
		}
		s.codec.ImportSelection(state, el)
	case "arrow":
		key := arrowKeys[strings.ToLower(step.Arrow)]
		if err := s.moveCaret(key); err != nil {
			return err
		}
		s.press(key, nil)
	case "key":
		s.press(step.Key, nil)
	default:
		return ErrInvalidStep
	}
	return nil
}

// typeText inserts text at the caret. Newlines press Enter.
func (s *session) typeText(text string) error {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			s.press(device.KeyEnter, nil)
		}
		if line == "" {
			continue
		}
		if err := s.dom.InsertText(line); err != nil {
			return fmt.Errorf("insert text: %w", err)
		}
		s.target.Fire(device.NewEvent(device.Input, ""))
		s.target.Fire(device.NewEvent(device.KeyUp, ""))
	}
	return nil
}

func (s *session) backspace() error {
	var deleteErr error
	s.press(keyBackspace, func() {
		if deleteErr = s.dom.DeleteBackward(); deleteErr == nil {
			s.target.Fire(device.NewEvent(device.Input, ""))
		}
	})
	if deleteErr != nil {
		return fmt.Errorf("delete: %w", deleteErr)
	}
	return nil
}

// press delivers keydown, runs the surface's default action unless a
// listener suppressed it, then delivers keyup.
func (s *session) press(key string, defaultAction func()) {
	proceed := s.target.Fire(device.NewEvent(device.KeyDown, key))
	if proceed && defaultAction != nil {
		defaultAction()
	}
	s.target.Fire(device.NewEvent(device.KeyUp, key))
}

// element resolves a position to its block element.
func (s *session) element(pos *Position) (*html.Node, error) {
	if pos.Selector != "" {
		return s.selectElement(pos.Selector)
	}
	if pos.Block != "" {
		el, ok := s.ed.Element(pos.Block)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoBlock, pos.Block)
		}
		return el, nil
	}
	blocks := s.ed.Document().Blocks()
	if pos.Index >= len(blocks) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoBlock, pos.Index, len(blocks))
	}
	el, ok := s.ed.Element(blocks[pos.Index].ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoBlock, blocks[pos.Index].ID)
	}
	return el, nil
}

// selectElement returns the block element holding the first match of
// selector below the content root.
func (s *session) selectElement(selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %w", ErrInvalidStep, selector, err)
	}
	match := sel.MatchFirst(s.ed.Root())
	if match == nil {
		return nil, fmt.Errorf("%w: nothing matches %q", ErrNoBlock, selector)
	}
	_, el, err := block.FindNearestElement(s.ed.Document(), match, s.ed.Root())
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	return el, nil
}

// moveCaret moves the caret one step in the direction of key. Left and
// right cross block boundaries, up and down keep the offset.
func (s *session) moveCaret(key string) error {
	sel, ok := s.dom.Selection()
	if !ok {
		return codec.ErrNoSelection
	}
	current, el, err := block.FindNearestElement(s.ed.Document(), sel.Start.Node, s.ed.Root())
	if err != nil {
		return err
	}
	state, err := s.codec.ExportSelection(el)
	if err != nil {
		return err
	}

	blocks := s.ed.Document().Blocks()
	idx := slices.IndexFunc(blocks, func(b *block.Block) bool { return b.ID == current.ID })
	neighbor := func(delta int) *html.Node {
		i := idx + delta
		if i < 0 || i >= len(blocks) {
			return nil
		}
		n, _ := s.ed.Element(blocks[i].ID)
		return n
	}

	target, offset := el, state.Start
	switch key {
	case device.KeyArrowLeft:
		switch {
		case !state.IsCollapsed():
		case offset > 0:
			offset--
		case neighbor(-1) != nil:
			target = neighbor(-1)
			offset = codec.Length(target)
		}
	case device.KeyArrowRight:
		offset = state.End
		switch {
		case !state.IsCollapsed():
		case offset < codec.Length(el):
			offset++
		case neighbor(1) != nil:
			target, offset = neighbor(1), 0
		}
	case device.KeyArrowUp:
		if prev := neighbor(-1); prev != nil {
			target = prev
		} else {
			offset = 0
		}
	case device.KeyArrowDown:
		if next := neighbor(1); next != nil {
			target = next
		} else {
			offset = codec.Length(el)
		}
	}

	s.codec.MoveCursor(target, offset)
	return nil
}

func (e *Expect) check(r *Result) []string {
	var out []string
	if e.Markdown != nil && *e.Markdown != r.Markdown {
		out = append(out, fmt.Sprintf("markdown: want %q, got %q", *e.Markdown, r.Markdown))
	}
	if e.HTML != nil && *e.HTML != r.HTML {
		out = append(out, fmt.Sprintf("html: want %q, got %q", *e.HTML, r.HTML))
	}
	if e.Active != "" && e.Active != r.Active {
		out = append(out, fmt.Sprintf("active: want %s, got %s", e.Active, r.Active))
	}
	if e.Tags != nil {
		tags := make([]string, 0, len(r.Blocks))
		for _, b := range r.Blocks {
			tags = append(tags, b.Tag.String())
		}
		if !slices.Equal(e.Tags, tags) {
			out = append(out, fmt.Sprintf("tags: want %v, got %v", e.Tags, tags))
		}
	}
	return out
}
