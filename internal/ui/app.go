// Package ui composes the Fyne application around the drawing engine.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snappyruler/internal/engine"
	"snappyruler/internal/settings"
)

// App is the assembled application window.
type App struct {
	fyneApp  fyne.App
	window   fyne.Window
	engine   *engine.Engine
	settings *settings.Settings
	sketch   *SketchWidget
	hudLabel *widget.Label
	status   *widget.Label

	// OnClearShare, when set, is called after a local clear so the share
	// layer can broadcast it.
	OnClearShare func()
}

// New builds the main window: toolbar on top, sketch surface in the middle,
// HUD and status along the bottom.
func New(eng *engine.Engine, sett *settings.Settings, shareLink string) *App {
	a := &App{
		fyneApp:  app.New(),
		engine:   eng,
		settings: sett,
		hudLabel: widget.NewLabel(""),
		status:   widget.NewLabel("Ready"),
	}
	a.window = a.fyneApp.NewWindow("Snappy Ruler Set")
	a.window.Resize(fyne.NewSize(1024, 768))

	a.sketch = NewSketchWidget(eng, sett)

	if shareLink != "" {
		a.status.SetText("Sharing at " + shareLink)
	}

	bottom := container.NewBorder(nil, nil, a.hudLabel, a.status)
	content := container.NewBorder(newToolbar(a), bottom, nil, nil, a.sketch)
	a.window.SetContent(content)
	return a
}

// Run subscribes the render layer to the engine's change notifications and
// enters the Fyne main loop.
func (a *App) Run() {
	go func() {
		for range a.engine.Changed() {
			fyne.Do(a.refresh)
		}
	}()
	a.window.ShowAndRun()
}

// refresh repaints the sketch surface and the HUD readout. Always called on
// the Fyne event thread.
func (a *App) refresh() {
	a.updateHud()
	a.sketch.Refresh()
}

func (a *App) updateHud() {
	hud := a.engine.CurrentHud()
	if !hud.Visible {
		a.hudLabel.SetText("")
		return
	}
	cm := hud.LengthPixels / a.settings.PixelsPerCentimeter
	a.hudLabel.SetText(fmt.Sprintf("%.1f px (%.2f cm)   %.1f°",
		hud.LengthPixels, cm, hud.AngleDegrees))
}

// SetStatus updates the status label from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() {
		a.status.SetText(text)
	})
}

// Window exposes the main window for dialogs.
func (a *App) Window() fyne.Window {
	return a.window
}
