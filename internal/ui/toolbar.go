package ui

import (
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"snappyruler/internal/engine"
	"snappyruler/internal/export"
)

var toolOrder = []engine.Tool{
	engine.ToolFreehand,
	engine.ToolRuler,
	engine.ToolSetSquare,
	engine.ToolProtractor,
	engine.ToolCompass,
}

var toolLabels = map[engine.Tool]string{
	engine.ToolFreehand:   "Freehand",
	engine.ToolRuler:      "Ruler",
	engine.ToolSetSquare:  "Set Square",
	engine.ToolProtractor: "Protractor",
	engine.ToolCompass:    "Compass",
}

func newToolbar(a *App) fyne.CanvasObject {
	names := make([]string, len(toolOrder))
	for i, t := range toolOrder {
		names[i] = toolLabels[t]
	}
	toolSelect := widget.NewSelect(names, func(selected string) {
		for t, label := range toolLabels {
			if label == selected {
				a.engine.SetTool(t)
				return
			}
		}
	})
	toolSelect.SetSelected(toolLabels[engine.ToolFreehand])

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			a.engine.Undo()
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			a.engine.Redo()
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			a.engine.Clear()
			if a.OnClearShare != nil {
				a.OnClearShare()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.GridIcon(), func() {
			a.sketch.ToggleGrid()
		}),
		widget.NewToolbarAction(theme.HomeIcon(), func() {
			a.sketch.ResetView()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), func() {
			exportPNG(a)
		}),
		widget.NewToolbarAction(theme.DocumentIcon(), func() {
			exportPDF(a)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			showSettingsDialog(a)
		}),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
	)
}

func exportPNG(a *App) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		opts := export.PNGOptions{Width: 1600}
		if err := export.WritePNG(writer, a.engine.Snapshot(), opts); err != nil {
			log.Printf("PNG export failed: %v", err)
			a.SetStatus("PNG export failed: " + err.Error())
			return
		}
		a.SetStatus("Exported PNG")
	}, a.window)
}

func exportPDF(a *App) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.WritePDF(path, a.engine.Snapshot()); err != nil {
			log.Printf("PDF export failed: %v", err)
			a.SetStatus("PDF export failed: " + err.Error())
			return
		}
		a.SetStatus("Exported PDF")
	}, a.window)
}

func showSettingsDialog(a *App) {
	grid := widget.NewEntry()
	grid.SetText(strconv.FormatFloat(a.settings.GridSpacing, 'f', -1, 64))
	tolerance := widget.NewEntry()
	tolerance.SetText(strconv.FormatFloat(a.settings.SnapToleranceDeg, 'f', -1, 64))
	calibration := widget.NewEntry()
	calibration.SetText(strconv.FormatFloat(a.settings.PixelsPerCentimeter, 'f', -1, 64))
	haptics := widget.NewCheck("", nil)
	haptics.SetChecked(a.settings.Haptics)

	form := []*widget.FormItem{
		widget.NewFormItem("Grid spacing", grid),
		widget.NewFormItem("Snap tolerance (°)", tolerance),
		widget.NewFormItem("Pixels per cm", calibration),
		widget.NewFormItem("Haptics", haptics),
	}
	dialog.ShowForm("Settings", "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		if v, err := strconv.ParseFloat(grid.Text, 64); err == nil && v > 0 {
			a.settings.GridSpacing = v
		}
		if v, err := strconv.ParseFloat(tolerance.Text, 64); err == nil && v > 0 {
			a.settings.SnapToleranceDeg = v
		}
		if v, err := strconv.ParseFloat(calibration.Text, 64); err == nil && v > 0 {
			a.settings.PixelsPerCentimeter = v
		}
		a.settings.Haptics = haptics.Checked
		if err := a.settings.Save(); err != nil {
			log.Printf("saving settings: %v", err)
		}
		a.engine.SetSnapConfig(engine.SnapConfig{
			ToleranceDeg: a.settings.SnapToleranceDeg,
			RulerAngles:  a.settings.SnapAngles,
		})
		a.sketch.Refresh()
	}, a.window)
}
