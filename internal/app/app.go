//go:build ebiten

package app

import (
	"context"
	"log/slog"

	"penplot/internal/render"
	"penplot/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	logger  *slog.Logger

	hudWidth int
	shown    int
	dirty    bool
}

// New constructs a Game for the session. hudWidth of zero hides the
// parameter panel.
func New(session *Session, style render.Style, hudWidth int, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		session:  session,
		painter:  render.NewPainter(style),
		overlay:  ui.NewOverlay(style.Pens),
		logger:   logger,
		hudWidth: hudWidth,
		dirty:    true,
	}
	session.Toggles = &g.overlay.Toggles
	session.Toggles.Reset(len(session.Result().Layers))
	g.rebuildHUD()
	return g
}

// Size is the window size for the current page.
func (g *Game) Size() (int, int) {
	w, h := g.painter.Style().Size(g.session.Result().Canvas)
	return w + g.hud.Width(), h
}

func (g *Game) rebuildHUD() {
	sk, err := g.session.Sketch()
	if err != nil {
		g.logger.Error("sketch", slog.Any("err", err))
		return
	}
	g.hud = ui.NewHUD(sk, g.hudWidth, func(key, value string) {
		if err := g.session.SetParam(context.Background(), key, value); err == nil {
			g.changed()
		}
	})
}

func (g *Game) changed() {
	g.hud.Refresh(g.session.Result().Params)
	g.dirty = true
}

func (g *Game) report(err error) {
	if err != nil {
		g.logger.Error("regenerate", slog.Any("err", err))
		return
	}
	g.changed()
}

// Update handles keys and advances playback.
func (g *Game) Update() error {
	ctx := context.Background()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.Playback.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Playback.Finish()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.report(g.session.Regenerate(ctx))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		err := g.session.Reseed(ctx)
		g.report(err)
		if err == nil {
			g.logger.Info("seed", slog.String("seed", g.session.Document().Seed))
		}
	}
	if changed, err := g.session.ApplyPending(ctx); err != nil {
		g.logger.Error("reload", slog.Any("err", err))
	} else if changed {
		g.rebuildHUD()
		g.changed()
	}

	if g.overlay.Update() {
		g.dirty = true
	}
	pw, _ := g.painter.Style().Size(g.session.Result().Canvas)
	g.hud.Update(pw)

	if shown := g.session.Playback.Advance(); shown != g.shown {
		g.shown = shown
		g.dirty = true
	}
	if g.dirty {
		g.painter.Paint(g.session.Result(), render.View{Hidden: g.session.Toggles.Hidden(), Limit: g.shown})
		g.dirty = false
	}
	return nil
}

// Draw renders the page, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen)
	w, h := g.painter.Size()
	g.overlay.Draw(screen, g.session.Result(), g.shown, len(g.session.Result().Paths()), w, h)
	g.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
