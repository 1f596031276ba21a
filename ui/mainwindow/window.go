// Package mainwindow provides the main application window.
package mainwindow

import (
	"encoding/csv"
	"fmt"
	"image/png"
	"path/filepath"

	"elispot-analyzer/internal/app"
	"elispot-analyzer/internal/imaging"
	"elispot-analyzer/internal/spot"
	"elispot-analyzer/internal/version"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastImage = "lastImage"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State

	preview     *fynecanvas.Image
	showOverlay bool
	statusBar   *widget.Label

	windowSlider      *widget.Slider
	sensitivitySlider *widget.Slider
	minAreaSlider     *widget.Slider
	maxAreaSlider     *widget.Slider
	windowLabel       *widget.Label
	sensitivityLabel  *widget.Label
	minAreaLabel      *widget.Label
	maxAreaLabel      *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("ELISpot Analyzer")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		state:       state,
		showOverlay: true,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastImage()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.preview = fynecanvas.NewImageFromImage(nil)
	mw.preview.FillMode = fynecanvas.ImageFillContain
	mw.preview.SetMinSize(fyne.NewSize(674, 500))

	mw.statusBar = widget.NewLabel("Ready - open an assay image to begin")

	params := mw.state.CurrentParams()

	// Slider step 2 keeps the window size odd.
	mw.windowSlider = widget.NewSlider(3, 101)
	mw.windowSlider.Step = 2
	mw.windowSlider.Value = float64(params.WindowSize)
	mw.windowLabel = widget.NewLabel(fmt.Sprintf("Window: %d px", params.WindowSize))
	mw.windowSlider.OnChanged = func(v float64) {
		mw.windowLabel.SetText(fmt.Sprintf("Window: %d px", int(v)))
	}

	mw.sensitivitySlider = widget.NewSlider(0, 50)
	mw.sensitivitySlider.Value = params.Sensitivity
	mw.sensitivityLabel = widget.NewLabel(fmt.Sprintf("Sensitivity: %.0f", params.Sensitivity))
	mw.sensitivitySlider.OnChanged = func(v float64) {
		mw.sensitivityLabel.SetText(fmt.Sprintf("Sensitivity: %.0f", v))
	}

	mw.minAreaSlider = widget.NewSlider(0, 500)
	mw.minAreaSlider.Value = float64(params.MinArea)
	mw.minAreaLabel = widget.NewLabel(fmt.Sprintf("Min area: %d px", params.MinArea))
	mw.minAreaSlider.OnChanged = func(v float64) {
		mw.minAreaLabel.SetText(fmt.Sprintf("Min area: %d px", int(v)))
	}

	mw.maxAreaSlider = widget.NewSlider(10, 5000)
	mw.maxAreaSlider.Value = float64(params.MaxArea)
	mw.maxAreaLabel = widget.NewLabel(fmt.Sprintf("Max area: %d px", params.MaxArea))
	mw.maxAreaSlider.OnChanged = func(v float64) {
		mw.maxAreaLabel.SetText(fmt.Sprintf("Max area: %d px", int(v)))
	}

	analyzeBtn := widget.NewButton("Analyze", mw.onAnalyze)
	analyzeBtn.Importance = widget.HighImportance
	toggleBtn := widget.NewButton("Toggle Overlay", mw.onToggleOverlay)

	controls := container.NewVBox(
		widget.NewLabelWithStyle("Parameters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.windowLabel, mw.windowSlider,
		mw.sensitivityLabel, mw.sensitivitySlider,
		mw.minAreaLabel, mw.minAreaSlider,
		mw.maxAreaLabel, mw.maxAreaSlider,
		widget.NewSeparator(),
		analyzeBtn,
		toggleBtn,
	)

	split := container.NewHSplit(controls, container.NewPadded(mw.preview))
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Overlay PNG...", mw.onExportOverlay),
		fyne.NewMenuItem("Export Results CSV...", mw.onExportCSV),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	analysisMenu := fyne.NewMenu("Analysis",
		fyne.NewMenuItem("Run", mw.onAnalyze),
		fyne.NewMenuItem("Toggle Overlay", mw.onToggleOverlay),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Parameters", mw.onResetParams),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, analysisMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("ELISpot Analyzer - " + filepath.Base(path))
			mw.updateStatus("Image loaded: " + path)
		}
		mw.refreshPreview()
	})

	mw.state.On(app.EventAnalysisComplete, func(data interface{}) {
		if result, ok := data.(*spot.Result); ok {
			summary := spot.Summarize(result.Spots)
			mw.updateStatus(fmt.Sprintf("%d spots, mean diameter %.1f px, total area %d px",
				summary.Count, summary.MeanDiameter, summary.TotalArea))
		}
		mw.refreshPreview()
	})
}

// refreshPreview shows the overlay when one exists and the overlay view is
// on, the normalized source otherwise.
func (mw *MainWindow) refreshPreview() {
	result := mw.state.CurrentResult()
	if result != nil && mw.showOverlay {
		mw.preview.Image = result.Overlay
	} else {
		mw.preview.Image = mw.state.CurrentImage()
	}
	mw.preview.Refresh()
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// currentParams builds a parameter set from the slider positions.
func (mw *MainWindow) currentParams() spot.Params {
	params := mw.state.CurrentParams()
	params.WindowSize = int(mw.windowSlider.Value)
	params.Sensitivity = mw.sensitivitySlider.Value
	params.MinArea = int(mw.minAreaSlider.Value)
	params.MaxArea = int(mw.maxAreaSlider.Value)
	return params
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// restoreLastImage reloads the image from the previous session.
func (mw *MainWindow) restoreLastImage() {
	path := mw.app.Preferences().String(prefKeyLastImage)
	if path == "" {
		return
	}
	if err := mw.state.LoadImage(path); err != nil {
		mw.updateStatus("Could not restore previous image: " + err.Error())
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.app.Preferences().SetString(prefKeyLastImage, path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(imaging.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAnalyze() {
	if !mw.state.HasImage() {
		mw.updateStatus("Open an image first")
		return
	}
	if err := mw.state.SetParams(mw.currentParams()); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if _, err := mw.state.Analyze(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onToggleOverlay() {
	mw.showOverlay = !mw.showOverlay
	mw.refreshPreview()
}

func (mw *MainWindow) onResetParams() {
	params := spot.DefaultParams()
	mw.windowSlider.SetValue(float64(params.WindowSize))
	mw.sensitivitySlider.SetValue(params.Sensitivity)
	mw.minAreaSlider.SetValue(float64(params.MinArea))
	mw.maxAreaSlider.SetValue(float64(params.MaxArea))
}

func (mw *MainWindow) onExportOverlay() {
	result := mw.state.CurrentResult()
	if result == nil {
		mw.updateStatus("Run an analysis first")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := png.Encode(writer, result.Overlay); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Overlay saved: " + writer.URI().Path())
	}, mw.Window)
	fd.SetFileName("overlay.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportCSV() {
	result := mw.state.CurrentResult()
	if result == nil {
		mw.updateStatus("Run an analysis first")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		w := csv.NewWriter(writer)
		if err := w.WriteAll(spot.Report(result.Spots)); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Results saved: " + writer.URI().Path())
	}, mw.Window)
	fd.SetFileName("spots.csv")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About ELISpot Analyzer",
		fmt.Sprintf("ELISpot Analyzer v%s\n\n"+
			"Spot detection and counting for ELISpot assay scans.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
