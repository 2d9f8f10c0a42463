// Package tui is the App State Machine and UI Layer: a Bubble Tea model
// that renders the key tree, the selected value, and the info/status bars,
// and dispatches to modal dialogs for help, confirmation, protection
// warnings, and diff previews before writes.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/redis-nav/internal/editorbridge"
	"github.com/studiowebux/redis-nav/internal/format"
	"github.com/studiowebux/redis-nav/internal/history"
	"github.com/studiowebux/redis-nav/internal/keybinds"
	"github.com/studiowebux/redis-nav/internal/protection"
	"github.com/studiowebux/redis-nav/internal/redisstore"
	"github.com/studiowebux/redis-nav/internal/tree"
	"github.com/studiowebux/redis-nav/internal/version"
	"github.com/studiowebux/redis-nav/internal/worker"
)

// Mode selects which part of the model currently owns key input.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeHelp
	ModeConfirm
	ModeProtection
	ModeDiffPreview
	ModeHistory
)

// Pane selects which half of the main view owns navigation/scroll intents
// in ModeNormal. Tab (ActionSwitchPane) toggles it.
type Pane int

const (
	PaneTree Pane = iota
	PaneValue
)

// pendingWrite carries the edited bytes shown in the DiffPreview dialog
// through to the actual write on Enter. Protection was already checked
// before the editor was launched.
type pendingWrite struct {
	key      string
	oldValue []byte
	newValue []byte
}

// pendingDelete carries the key a Confirm dialog is about to delete.
type pendingDelete struct {
	key string
}

// pendingEdit carries the key a Warn/Confirm protection dialog will, once
// acknowledged, launch the external editor for.
type pendingEdit struct {
	key string
}

// Model is the root Bubble Tea model.
type Model struct {
	width, height int

	bus        *worker.Bus
	builder    *tree.Builder
	policy     *protection.Policy
	editor     *editorbridge.Bridge
	history    *history.Manager
	profile    string
	readonly   bool
	appVersion string

	updateAvailable bool
	updateVersion   string
	updateURL       string

	roots []*tree.Node
	rows  []tree.Row
	cursor int

	activePane Pane

	selectedKey   string
	selectedType  redisstore.DataType
	selectedValue redisstore.Value
	selectedTTL   int64
	valueLoaded   bool

	valueViewport viewport.Model
	search        textinput.Model
	confirmInput  textinput.Model

	mode Mode

	registry *keybinds.Registry

	pendingWrite  *pendingWrite
	pendingDelete *pendingDelete
	pendingEdit   *pendingEdit
	protectionKey string
	editSession   *editorbridge.Session
	editOld       []byte

	statusMessage string
	errMessage    string

	recentVisits []history.Entry
}

// New builds a Model wired to bus and the given configuration.
func New(bus *worker.Bus, builder *tree.Builder, policy *protection.Policy, editor *editorbridge.Bridge, hist *history.Manager, profile string, readonly bool, appVersion string) *Model {
	search := textinput.New()
	search.Placeholder = "search keys"

	confirmInput := textinput.New()
	confirmInput.Placeholder = "yes"

	return &Model{
		bus:           bus,
		builder:       builder,
		policy:        policy,
		editor:        editor,
		history:       hist,
		profile:       profile,
		readonly:      readonly,
		appVersion:    appVersion,
		valueViewport: viewport.New(0, 0),
		search:        search,
		confirmInput:  confirmInput,
		mode:          ModeNormal,
		registry:      keybinds.NewDefaultRegistry(),
	}
}

// updateCheckMsg carries the result of a fire-and-forget GitHub release
// check, kicked off from Init so it never delays the first render.
type updateCheckMsg struct {
	available bool
	version   string
	url       string
}

// checkForUpdateCmd runs version.CheckForUpdate off the main loop; a
// network failure is swallowed (zero-value msg) since an update notice is
// a courtesy, not something worth surfacing as an error.
func checkForUpdateCmd(appVersion string) tea.Cmd {
	return func() tea.Msg {
		available, latest, url, err := version.CheckForUpdate(appVersion)
		if err != nil {
			return updateCheckMsg{}
		}
		return updateCheckMsg{available: available, version: latest, url: url}
	}
}

// busEventMsg wraps a worker.Event so it flows through tea.Msg.
type busEventMsg worker.Event

// listenForEvents polls the worker's Events channel once; Update
// re-schedules it after each delivery so the bubbletea loop keeps draining
// the bus without the worker ever blocking on an unread channel.
func listenForEvents(bus *worker.Bus) tea.Cmd {
	return func() tea.Msg {
		ev := <-bus.Events
		return busEventMsg(ev)
	}
}

// Init kicks off the initial enumeration and starts listening for worker
// events.
func (m *Model) Init() tea.Cmd {
	m.bus.Send(worker.Command{Kind: worker.CmdEnumerate, Pattern: "*"})
	return tea.Batch(listenForEvents(m.bus), checkForUpdateCmd(m.appVersion))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layoutViewport()
		return m, nil

	case busEventMsg:
		cmd := m.handleEvent(worker.Event(msg))
		return m, tea.Batch(cmd, listenForEvents(m.bus))

	case editDoneMsg:
		return m, m.handleEditDone(msg)

	case updateCheckMsg:
		if msg.available {
			m.updateAvailable = true
			m.updateVersion = msg.version
			m.updateURL = msg.url
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleEditDone finishes the editor round trip started by startEdit. The
// protection check already happened before the editor was launched, so a
// changed value goes straight to the diff preview.
func (m *Model) handleEditDone(msg editDoneMsg) tea.Cmd {
	session := m.editSession
	m.editSession = nil
	if session == nil {
		return nil
	}

	newValue, changed, err := session.Finish(msg.execErr)
	if err != nil {
		m.errMessage = err.Error()
		return nil
	}
	if !changed {
		m.statusMessage = "no change"
		return nil
	}

	m.pendingWrite = &pendingWrite{key: msg.key, oldValue: m.editOld, newValue: newValue}
	m.mode = ModeDiffPreview
	return nil
}

func (m *Model) layoutViewport() {
	valueWidth := m.width*ValuePanePercent/100 - ViewportBorderWidth
	valueHeight := m.height - MainViewHeightOffset - InfoBarHeight
	if valueWidth < 0 {
		valueWidth = 0
	}
	if valueHeight < 0 {
		valueHeight = 0
	}
	m.valueViewport.Width = valueWidth
	m.valueViewport.Height = valueHeight
}

// handleEvent applies one worker.Event to model state.
func (m *Model) handleEvent(ev worker.Event) tea.Cmd {
	switch ev.Kind {
	case worker.EvKeysLoaded:
		entries := make([]tree.Entry, 0, len(ev.Keys))
		for _, k := range ev.Keys {
			entries = append(entries, tree.Entry{Key: k.Key, Type: k.Type})
		}
		m.roots = m.builder.Build(entries)
		m.rows = tree.Flatten(m.roots)

	case worker.EvValueLoaded:
		if ev.Key != m.selectedKey {
			// Stale reply: the user navigated elsewhere before this arrived.
			return nil
		}
		m.selectedType = ev.Type
		m.selectedValue = ev.Value
		m.selectedTTL = ev.TTL
		m.valueLoaded = true
		m.valueViewport.SetContent(renderValueBody(ev.Value, ev.Type))
		m.valueViewport.GotoTop()
		if m.history != nil {
			_ = m.history.Visit(m.profile, ev.Key, ev.Type.String())
		}

	case worker.EvWriteOk:
		m.statusMessage = fmt.Sprintf("wrote %s", ev.Key)
		m.refreshSelected()

	case worker.EvDeleteOk:
		m.statusMessage = fmt.Sprintf("deleted %s", ev.Key)
		m.selectedKey = ""
		m.valueLoaded = false
		m.bus.Send(worker.Command{Kind: worker.CmdEnumerate, Pattern: "*"})

	case worker.EvFailure:
		m.errMessage = ev.Failure
	}
	return nil
}

func (m *Model) refreshSelected() {
	if m.selectedKey == "" {
		return
	}
	m.bus.TrySend(worker.Command{Kind: worker.CmdFetch, Key: m.selectedKey})
}

func (m *Model) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// currentRow returns the tree.Row under the cursor, or nil if there are no
// rows.
func (m *Model) currentRow() *tree.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// treePageSize is the cursor jump for page-up/page-down, one tree pane
// height's worth of rows.
func (m *Model) treePageSize() int {
	size := m.height - MainViewHeightOffset
	if size < 1 {
		return 1
	}
	return size
}

// valueHalfPage is the line count for a half-screen scroll (±page) in the
// value pane.
func (m *Model) valueHalfPage() int {
	half := m.valueViewport.Height / 2
	if half < 1 {
		return 1
	}
	return half
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// openHistory loads the recent visit log for the current profile and
// switches to ModeHistory to display it.
func (m *Model) openHistory() {
	if m.history == nil {
		m.statusMessage = "no history available"
		return
	}
	entries, err := m.history.Recent(m.profile, 20)
	if err != nil {
		m.errMessage = err.Error()
		return
	}
	m.recentVisits = entries
	m.mode = ModeHistory
}

// formatBytesForEditor returns the editable representation of the current
// selection, used both for the external editor round trip and diff preview.
// Only String values are actually editable (§5); callers should check
// selectedType before allowing an edit.
func formatBytesForEditor(v redisstore.Value) []byte {
	if pretty, err := format.PrettyJSON(v.String); err == nil {
		return []byte(pretty)
	}
	return []byte(v.String)
}
