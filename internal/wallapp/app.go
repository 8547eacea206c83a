// Package wallapp wires the layout tree, playback engine, content index, and
// configuration layers together to present the VideoWall desktop application.
package wallapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	config "github.com/edward-ap/videowall/internal/config"
	"github.com/edward-ap/videowall/internal/content"
	"github.com/edward-ap/videowall/internal/layout"
	"github.com/edward-ap/videowall/internal/playback"
	"github.com/edward-ap/videowall/internal/player"
	"github.com/edward-ap/videowall/internal/wall"
)

// windowGeometry is the payload stored in a layout document's geometry blob.
type windowGeometry struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// windowState is the payload stored in a layout document's state blob.
type windowState struct {
	FullScreen bool `json:"fullScreen"`
}

// App owns the fyne application, main window, playback engine, content
// libraries, and the pane tree with its coordinators.
type App struct {
	fa  fyne.App
	w   fyne.Window
	cfg *config.Config

	engine  *playback.Engine
	movies  *content.Library
	layouts *content.Library
	watcher *content.Watcher

	tree     *wall.Tree
	router   *wall.ControlRouter
	transfer *wall.TransferCoordinator

	panes map[*player.State]*paneController

	// path of the explicitly opened or saved layout, "" while unsaved
	currentFile string
	paused      bool
}

// NewApp wires configuration, engine, libraries, and fyne scaffolding into a
// ready-to-run App instance.
func NewApp() *App {
	cfg, err := config.Load()
	if err != nil {
		log.Println("config load error:", err)
		cfg = config.Default()
	}

	fa := app.NewWithID(config.AppID)
	fa.Settings().SetTheme(theme.DarkTheme())
	w := fa.NewWindow("VideoWall")
	w.SetMaster()
	w.SetPadded(false)
	w.Resize(fyne.NewSize(config.DefaultWindowWidth, config.DefaultWindowHeight))

	a := &App{
		fa:    fa,
		w:     w,
		cfg:   cfg,
		panes: map[*player.State]*paneController{},
	}

	engine, err := playback.NewEngine()
	if err != nil {
		log.Println("engine init error:", err)
		dialog.ShowError(fmt.Errorf("cannot initialize VLC: %w\n\nInstall VLC or place libvlc next to the executable together with its plugins folder; architectures must match.", err), w)
	}
	a.engine = engine

	a.movies = content.NewLibrary(cfg.MovieFolder, content.MovieExtensions)
	a.layouts = content.NewLibrary(cfg.LayoutFolder, content.LayoutExtensions)
	go a.movies.Scan(func(folder string) { tracef("scan: %s", folder) })
	go a.layouts.Scan(nil)
	go func() {
		<-a.movies.Done()
		watcher, err := content.Watch(a.movies, nil)
		if err != nil {
			log.Println("content watcher error:", err)
			return
		}
		a.watcher = watcher
	}()

	a.tree = wall.New(config.DefaultWindowWidth, config.DefaultWindowHeight, a.newLeaf)
	a.router = wall.NewControlRouter(cfg.JogInterval)
	a.transfer = wall.NewTransferCoordinator(a.tree)

	w.SetMainMenu(a.buildMenu())
	w.Canvas().SetOnTypedKey(a.handleShortcutKey)

	if cfg.OpenLastOnStartup {
		a.openLast()
	} else {
		a.reset(nil)
	}

	w.SetCloseIntercept(func() {
		a.shutdown()
	})
	return a
}

// Run enters the fyne event loop.
func (a *App) Run() {
	a.w.ShowAndRun()
}

// newLeaf is the tree's pane factory: one engine player plus one state
// machine per leaf, restored from the persisted spec.
func (a *App) newLeaf(spec *layout.PlayerSpec) *player.State {
	var pane *playback.Pane
	var pb player.Playback = nullPlayback{}
	if a.engine != nil {
		p, err := a.engine.NewPane()
		if err != nil {
			log.Println("pane create error:", err)
		} else {
			pane = p
			pb = p
		}
	}
	state := player.New(pb, a.movies)
	state.Apply(spec, a.cfg.DefaultVolume, a.cfg.PreRoll)
	pc := a.newPaneController(state, pane)
	a.panes[state] = pc
	if state.Source() != "" && !a.paused {
		state.Play()
	}
	return state
}

// reset replaces the whole wall with the given spec (nil for a single blank
// pane), releasing every existing pane first.
func (a *App) reset(spec *layout.Node) {
	for _, pc := range a.panes {
		pc.close()
	}
	a.panes = map[*player.State]*paneController{}
	a.router.Release(a.router.Controlled())
	if pending := a.transfer.Pending(); pending != nil {
		a.transfer.Forget(pending)
	}

	a.syncTreeExtent()
	if err := a.tree.Load(spec); err != nil {
		log.Println("layout load error:", err)
		dialog.ShowError(err, a.w)
		_ = a.tree.Load(nil)
	}
	a.restoreControl()
	a.rebuild()
}

// restoreControl grants control to the first pane whose persisted spec asked
// for it; any later claimants lose the flag.
func (a *App) restoreControl() {
	var first *wall.Leaf
	a.tree.ForEachLeaf(func(l *wall.Leaf) {
		if !l.State.HasControl() {
			return
		}
		if first == nil {
			first = l
			return
		}
		l.State.SetControl(false)
	})
	if first == nil {
		if leaves := a.tree.Leaves(); len(leaves) > 0 {
			first = leaves[0]
		}
	}
	if first != nil {
		first.State.SetControl(false)
		a.router.SetControl(first)
	}
	a.refreshControlMarks()
}

// rebuild regenerates the window content from the current tree shape.
func (a *App) rebuild() {
	root := a.tree.Root()
	if root == nil {
		return
	}
	a.w.SetContent(a.buildSplit(root))
}

func (a *App) buildSplit(sp *wall.Split) fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(sp.Children))
	for _, child := range sp.Children {
		switch v := child.(type) {
		case *wall.Leaf:
			if pc, ok := a.panes[v.State]; ok {
				objects = append(objects, pc.view)
			}
		case *wall.Split:
			objects = append(objects, a.buildSplit(v))
		}
	}
	return container.New(newSplitLayout(sp), objects...)
}

// syncTreeExtent feeds the live canvas size into the tree so that future
// splits distribute real pixels, not the startup defaults.
func (a *App) syncTreeExtent() {
	size := a.w.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		a.tree.Resize(int(size.Width), int(size.Height))
	}
}

// leafFor finds the tree leaf owning a pane state.
func (a *App) leafFor(state *player.State) *wall.Leaf {
	var found *wall.Leaf
	a.tree.ForEachLeaf(func(l *wall.Leaf) {
		if l.State == state {
			found = l
		}
	})
	return found
}

func (a *App) takeControl(state *player.State) {
	if leaf := a.leafFor(state); leaf != nil {
		a.router.SetControl(leaf)
		a.refreshControlMarks()
	}
}

func (a *App) refreshControlMarks() {
	for state, pc := range a.panes {
		pc.view.SetControlled(state.HasControl())
	}
}

func (a *App) refreshArmedMarks() {
	pending := a.transfer.Pending()
	a.tree.ForEachLeaf(func(l *wall.Leaf) {
		if pc, ok := a.panes[l.State]; ok {
			pc.view.SetArmed(l == pending)
		}
	})
}

// transferControlled arms the controlled pane for a swap, or completes the
// swap when another pane is already armed.
func (a *App) transferControlled() {
	leaf := a.router.Controlled()
	if leaf == nil {
		return
	}
	res, err := a.transfer.Request(leaf)
	if err != nil {
		log.Println("transfer error:", err)
		dialog.ShowError(err, a.w)
	}
	if res == wall.TransferSwapped {
		a.rebuild()
	}
	a.refreshArmedMarks()
}

func (a *App) splitControlled(orient wall.Orientation) {
	leaf := a.router.Controlled()
	if leaf == nil {
		return
	}
	a.syncTreeExtent()
	a.tree.Split(leaf.ID, orient)
	a.rebuild()
}

func (a *App) closeControlled() {
	leaf := a.router.Controlled()
	if leaf == nil {
		return
	}
	if err := a.tree.Close(leaf.ID); err != nil {
		if errors.Is(err, wall.ErrInvalidState) {
			log.Println("close pane:", err)
			return
		}
		dialog.ShowError(err, a.w)
		return
	}
	a.router.Release(leaf)
	a.transfer.Forget(leaf)
	if pc, ok := a.panes[leaf.State]; ok {
		pc.close()
		delete(a.panes, leaf.State)
	}
	a.rebuild()
}

// assignControlled lets the user pick a clip from the movie library for the
// controlled pane.
func (a *App) assignControlled() {
	leaf := a.router.Controlled()
	if leaf == nil {
		return
	}
	labels := a.movies.Labels()
	if len(labels) == 0 {
		dialog.ShowInformation("Assign Clip", "No clips found in "+a.movies.Folder(), a.w)
		return
	}
	list := widget.NewList(
		func() int { return len(labels) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(labels[i])
		},
	)
	d := dialog.NewCustom("Assign Clip", "Cancel", list, a.w)
	list.OnSelected = func(i widget.ListItemID) {
		if path, ok := a.movies.Resolve(labels[i]); ok {
			leaf.State.SetSource(path)
			leaf.State.Play()
		}
		d.Hide()
	}
	d.Resize(fyne.NewSize(420, 480))
	d.Show()
}

func (a *App) togglePauseAll() {
	a.paused = !a.paused
	a.tree.ForEachLeaf(func(l *wall.Leaf) {
		if a.paused {
			l.State.Pause()
		} else {
			l.State.Play()
		}
	})
}

func (a *App) playAll() {
	a.paused = false
	a.tree.ForEachLeaf(func(l *wall.Leaf) { l.State.Play() })
}

func (a *App) pauseAll() {
	a.paused = true
	a.tree.ForEachLeaf(func(l *wall.Leaf) { l.State.Pause() })
}

func (a *App) muteAll() {
	a.tree.ForEachLeaf(func(l *wall.Leaf) { l.State.Mute() })
}

func (a *App) unmuteAll() {
	a.tree.ForEachLeaf(func(l *wall.Leaf) { l.State.Unmute() })
}

func (a *App) togglePauseControlled() {
	if leaf := a.router.Controlled(); leaf != nil {
		leaf.State.TogglePause()
	}
}

func (a *App) toggleMuteControlled() {
	leaf := a.router.Controlled()
	if leaf == nil {
		return
	}
	if leaf.State.Volume() > 0 {
		leaf.State.Mute()
	} else {
		leaf.State.Unmute()
	}
}

// ----------------- documents -----------------

func (a *App) encodeGeometry() string {
	size := a.w.Canvas().Size()
	b, err := json.Marshal(windowGeometry{Width: size.Width, Height: size.Height})
	if err != nil {
		return ""
	}
	return layout.EncodeBlob(b)
}

func (a *App) encodeState() string {
	b, err := json.Marshal(windowState{FullScreen: a.w.FullScreen()})
	if err != nil {
		return ""
	}
	return layout.EncodeBlob(b)
}

func (a *App) applyGeometry(doc *layout.Document) {
	if !a.cfg.RestoreWindowState {
		return
	}
	if b, err := layout.DecodeBlob(doc.Geometry); err == nil && len(b) > 0 {
		geo := windowGeometry{}
		if json.Unmarshal(b, &geo) == nil && geo.Width > 0 && geo.Height > 0 {
			a.w.Resize(fyne.NewSize(geo.Width, geo.Height))
		}
	}
	if b, err := layout.DecodeBlob(doc.State); err == nil && len(b) > 0 {
		st := windowState{}
		if json.Unmarshal(b, &st) == nil && st.FullScreen {
			a.w.SetFullScreen(true)
		}
	}
}

func (a *App) writeDoc(path string) {
	doc := &layout.Document{
		Geometry: a.encodeGeometry(),
		State:    a.encodeState(),
		Spec:     a.tree.Spec(),
		File:     a.currentFile,
	}
	if err := doc.Write(path); err != nil {
		log.Println("layout save error:", err)
		dialog.ShowError(err, a.w)
	}
}

func (a *App) openPath(path string) {
	doc, err := layout.Read(path)
	if err != nil {
		log.Println("layout open error:", err)
		dialog.ShowError(err, a.w)
		return
	}
	tracef("open layout: %s", path)
	a.applyGeometry(doc)
	a.reset(doc.Spec)
	a.currentFile = path
}

// openLast restores the implicit shutdown layout and, through its file field,
// the explicitly opened document it mirrored.
func (a *App) openLast() {
	doc, err := layout.Read(a.cfg.LastLayoutPath())
	if err != nil {
		log.Println("last layout error:", err)
		a.reset(nil)
		return
	}
	a.applyGeometry(doc)
	a.reset(doc.Spec)
	a.currentFile = doc.File
}

func (a *App) openDialog() {
	labels := a.layouts.Labels()
	if len(labels) == 0 {
		dialog.ShowInformation("Open Layout", "No layouts found in "+a.layouts.Folder(), a.w)
		return
	}
	list := widget.NewList(
		func() int { return len(labels) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(labels[i])
		},
	)
	d := dialog.NewCustom("Open Layout", "Cancel", list, a.w)
	list.OnSelected = func(i widget.ListItemID) {
		if path, ok := a.layouts.Resolve(labels[i]); ok {
			a.openPath(path)
		}
		d.Hide()
	}
	d.Resize(fyne.NewSize(420, 480))
	d.Show()
}

func (a *App) save() {
	if a.currentFile == "" {
		a.saveAs()
		return
	}
	a.writeDoc(a.currentFile)
}

func (a *App) saveAs() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("layout name")
	dialog.ShowForm("Save Layout", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", entry)},
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			path := filepath.Join(a.cfg.LayoutFolder, entry.Text+".json")
			a.currentFile = path
			a.writeDoc(path)
		}, a.w)
}

func (a *App) shutdown() {
	a.writeDoc(a.cfg.LastLayoutPath())
	if a.cfg.AutoUpdateLayout && a.currentFile != "" {
		a.writeDoc(a.currentFile)
	}
	if err := a.cfg.Save(); err != nil {
		log.Println("config save error:", err)
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	for _, pc := range a.panes {
		pc.close()
	}
	if a.engine != nil {
		a.engine.Release()
	}
	a.w.Close()
	a.fa.Quit()
}

// ----------------- menu and shortcuts -----------------

func (a *App) buildMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Wall", func() { a.currentFile = ""; a.reset(nil) }),
		fyne.NewMenuItem("Demo Wall", func() { a.currentFile = ""; a.reset(DemoSpec()) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open…", a.openDialog),
		fyne.NewMenuItem("Open Last", a.openLast),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", a.save),
		fyne.NewMenuItem("Save As…", a.saveAs),
	)
	playbackMenu := fyne.NewMenu("Playback",
		fyne.NewMenuItem("Play All", a.playAll),
		fyne.NewMenuItem("Pause All", a.pauseAll),
		fyne.NewMenuItem("Mute All", a.muteAll),
		fyne.NewMenuItem("Unmute All", a.unmuteAll),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Pause Pane [P]", a.togglePauseControlled),
		fyne.NewMenuItem("Mute [M]", a.toggleMuteControlled),
		fyne.NewMenuItem("Louder [Up]", func() { a.router.VolumeNudge(true) }),
		fyne.NewMenuItem("Quieter [Down]", func() { a.router.VolumeNudge(false) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Jog Back [Left]", func() { a.router.Jog(false) }),
		fyne.NewMenuItem("Jog Forward [Right]", func() { a.router.Jog(true) }),
		fyne.NewMenuItem("Previous Clip [PgUp]", func() { a.router.Act(-1) }),
		fyne.NewMenuItem("Next Clip [PgDn]", func() { a.router.Act(1) }),
		fyne.NewMenuItem("End Action [Return]", func() { a.router.Act(0) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("History Back [B]", func() { a.router.HistoryMove(false) }),
		fyne.NewMenuItem("History Forward [F]", func() { a.router.HistoryMove(true) }),
	)
	paneMenu := fyne.NewMenu("Pane",
		fyne.NewMenuItem("Assign Clip… [A]", a.assignControlled),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Split Horizontal [H]", func() { a.splitControlled(wall.Horizontal) }),
		fyne.NewMenuItem("Split Vertical [V]", func() { a.splitControlled(wall.Vertical) }),
		fyne.NewMenuItem("Close Pane [W]", a.closeControlled),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Transfer [T]", a.transferControlled),
		fyne.NewMenuItem("Toggle Overlay [I]", func() { a.router.ToggleInterface() }),
	)
	return fyne.NewMainMenu(fileMenu, playbackMenu, paneMenu)
}

// handleShortcutKey centralizes keyboard shortcuts regardless of which widget
// currently owns focus.
func (a *App) handleShortcutKey(ke *fyne.KeyEvent) {
	if ke == nil {
		return
	}
	switch ke.Name {
	case fyne.KeySpace:
		a.togglePauseAll()
	case fyne.KeyUp:
		a.router.VolumeNudge(true)
	case fyne.KeyDown:
		a.router.VolumeNudge(false)
	case fyne.KeyLeft:
		a.router.Jog(false)
	case fyne.KeyRight:
		a.router.Jog(true)
	case fyne.KeyPageUp:
		a.router.Act(-1)
	case fyne.KeyPageDown:
		a.router.Act(1)
	case fyne.KeyReturn, fyne.KeyEnter:
		a.router.Act(0)
	case fyne.KeyB:
		a.router.HistoryMove(false)
	case fyne.KeyF:
		a.router.HistoryMove(true)
	case fyne.KeyP:
		a.togglePauseControlled()
	case fyne.KeyM:
		a.toggleMuteControlled()
	case fyne.KeyA:
		a.assignControlled()
	case fyne.KeyH:
		a.splitControlled(wall.Horizontal)
	case fyne.KeyV:
		a.splitControlled(wall.Vertical)
	case fyne.KeyW:
		a.closeControlled()
	case fyne.KeyT:
		a.transferControlled()
	case fyne.KeyI:
		a.router.ToggleInterface()
	}
}
