package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/redis-nav/internal/keybinds"
	"github.com/studiowebux/redis-nav/internal/protection"
	"github.com/studiowebux/redis-nav/internal/tree"
	"github.com/studiowebux/redis-nav/internal/worker"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeHelp:
		return m.handleDialogKey(msg, keybinds.ContextHelp)
	case ModeHistory:
		return m.handleDialogKey(msg, keybinds.ContextHelp)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeProtection:
		return m.handleProtectionKey(msg)
	case ModeDiffPreview:
		return m.handleDiffKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	action, complete, partial := m.registry.MatchMultiKey(keybinds.ContextNormal, key)
	if partial {
		return m, nil
	}
	if !complete {
		return m, nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m, tea.Quit

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		return m, nil

	case keybinds.ActionSwitchPane:
		if m.activePane == PaneTree {
			m.activePane = PaneValue
		} else {
			m.activePane = PaneTree
		}
		return m, nil

	case keybinds.ActionNavigateUp:
		if m.activePane == PaneTree && m.cursor > 0 {
			m.cursor--
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionNavigateDown:
		if m.activePane == PaneTree && m.cursor < len(m.rows)-1 {
			m.cursor++
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionPageUp:
		if m.activePane == PaneValue {
			m.valueViewport.LineUp(m.valueHalfPage())
		} else {
			m.cursor = max(0, m.cursor-m.treePageSize())
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionPageDown:
		if m.activePane == PaneValue {
			m.valueViewport.LineDown(m.valueHalfPage())
		} else {
			m.cursor = min(len(m.rows)-1, m.cursor+m.treePageSize())
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionGoToTop:
		if m.activePane == PaneValue {
			m.valueViewport.GotoTop()
		} else {
			m.cursor = 0
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionGoToBottom:
		if m.activePane == PaneValue {
			m.valueViewport.GotoBottom()
		} else {
			m.cursor = max(0, len(m.rows)-1)
			m.onSelectionChanged()
		}
		return m, nil

	case keybinds.ActionToggleExpand:
		if m.activePane == PaneTree {
			m.activateRow()
		}
		return m, nil

	case keybinds.ActionScrollValueUp:
		m.valueViewport.LineUp(1)
		return m, nil

	case keybinds.ActionScrollValueDown:
		m.valueViewport.LineDown(1)
		return m, nil

	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		m.search.SetValue("")
		m.search.Focus()
		return m, nil

	case keybinds.ActionRefresh:
		m.refreshSelected()
		return m, nil

	case keybinds.ActionRefreshAll:
		m.bus.Send(worker.Command{Kind: worker.CmdEnumerate, Pattern: "*"})
		return m, nil

	case keybinds.ActionDelete:
		return m, m.startDelete()

	case keybinds.ActionEdit:
		return m, m.startEdit()

	case keybinds.ActionOpenHistory:
		m.openHistory()
		return m, nil

	case keybinds.ActionCopyKey:
		if m.selectedKey != "" {
			if err := clipboard.WriteAll(m.selectedKey); err != nil {
				m.errMessage = err.Error()
			} else {
				m.statusMessage = "copied key"
			}
		}
		return m, nil

	case keybinds.ActionCopyValue:
		if m.selectedKey != "" && m.valueLoaded {
			if err := clipboard.WriteAll(renderValueBody(m.selectedValue, m.selectedType)); err != nil {
				m.errMessage = err.Error()
			} else {
				m.statusMessage = "copied value"
			}
		}
		return m, nil
	}

	return m, nil
}

// onSelectionChanged fires a Fetch for a newly selected leaf. It is a
// non-blocking send: rapid navigation should never stall on a backed-up
// worker (§4.6/P12), and a stale reply is rejected in handleEvent by key
// comparison.
func (m *Model) onSelectionChanged() {
	row := m.currentRow()
	if row == nil || row.IsFolder {
		m.selectedKey = ""
		m.valueLoaded = false
		return
	}
	m.selectedKey = row.FullKey
	m.valueLoaded = false
	m.bus.TrySend(worker.Command{Kind: worker.CmdFetch, Key: row.FullKey})
}

// activateRow expands/collapses the current row if it has children —
// folders always do, and so does a leaf with the same full_key as a
// narrower folder (a:b coexisting with a:b:c) — otherwise it selects the
// leaf and fetches its value.
func (m *Model) activateRow() {
	row := m.currentRow()
	if row == nil {
		return
	}
	if row.ChildCount > 0 {
		node := tree.NodeAt(m.roots, row.Path)
		tree.Toggle(node)
		m.rows = tree.Flatten(m.roots)
		return
	}
	m.onSelectionChanged()
}

// startEdit classifies the currently selected key against the protection
// policy before ever touching the external editor: Block stops here and
// shows the block dialog, Warn/Confirm stop at the protection dialog and
// only launch the editor once acknowledged, Allow launches it immediately.
func (m *Model) startEdit() tea.Cmd {
	if m.selectedKey == "" || !m.valueLoaded {
		return nil
	}
	if m.readonly {
		m.statusMessage = "readonly: edits disabled"
		return nil
	}

	key := m.selectedKey
	switch m.policy.Classify(key) {
	case protection.Block:
		m.protectionKey = key
		m.mode = ModeProtection
		return nil
	case protection.Allow:
		return m.launchEditor(key)
	default: // Warn, Confirm
		m.protectionKey = key
		m.pendingEdit = &pendingEdit{key: key}
		m.confirmInput.SetValue("")
		m.confirmInput.Focus()
		m.mode = ModeProtection
		return nil
	}
}

// launchEditor opens the external editor for key's current string value,
// suspending the TUI around the child process via tea.ExecProcess rather
// than racing it for the terminal. Protection has already been cleared by
// the time this is called.
func (m *Model) launchEditor(key string) tea.Cmd {
	if m.selectedType.String() != "STRING" {
		m.statusMessage = "only string values can be edited"
		return nil
	}

	old := formatBytesForEditor(m.selectedValue)

	session, cmd, err := m.editor.Prepare(key, old)
	if err != nil {
		m.errMessage = err.Error()
		return nil
	}
	m.editSession = session
	m.editOld = old

	return tea.ExecProcess(cmd, func(execErr error) tea.Msg {
		return editDoneMsg{key: key, execErr: execErr}
	})
}

// startDelete classifies the selected leaf: Block shows the block dialog
// and stops; everything else (including Warn/Confirm) opens the typed-"yes"
// Confirm dialog, matching the delete flow's simpler protection gate.
func (m *Model) startDelete() tea.Cmd {
	row := m.currentRow()
	if row == nil || row.IsFolder {
		return nil
	}
	if m.readonly {
		m.statusMessage = "readonly: deletes disabled"
		return nil
	}

	key := row.FullKey
	if m.policy.Classify(key) == protection.Block {
		m.protectionKey = key
		m.mode = ModeProtection
		return nil
	}

	m.pendingDelete = &pendingDelete{key: key}
	m.confirmInput.SetValue("")
	m.confirmInput.Focus()
	m.mode = ModeConfirm
	return nil
}

type editDoneMsg struct {
	key     string
	execErr error
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.applySearch()
		m.mode = ModeNormal
		return m, nil
	case "esc":
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) applySearch() {
	needle := strings.ToLower(m.search.Value())
	if needle == "" {
		return
	}
	for i, row := range m.rows {
		if strings.Contains(strings.ToLower(row.Name), needle) {
			m.cursor = i
			m.onSelectionChanged()
			return
		}
	}
}

func (m *Model) handleDialogKey(msg tea.KeyMsg, ctx keybinds.Context) (tea.Model, tea.Cmd) {
	action, ok := m.registry.Match(ctx, msg.String())
	if ok && action == keybinds.ActionCloseModal {
		m.mode = ModeNormal
	}
	return m, nil
}

// handleConfirmKey requires an actual typed "yes" before deleting (§3
// glossary: Confirm "requires typed acknowledgement"), not a single
// keypress.
func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.pendingDelete = nil
		m.confirmInput.Blur()
		m.mode = ModeNormal
		return m, nil
	}
	return m.handleTypedYesKey(msg, m.proceedDelete)
}

// proceedDelete sends the pending Delete command once "yes" has been typed.
func (m *Model) proceedDelete() tea.Cmd {
	pending := m.pendingDelete
	m.pendingDelete = nil
	m.confirmInput.Blur()
	m.mode = ModeNormal
	if pending != nil {
		m.bus.Send(worker.Command{Kind: worker.CmdDelete, Key: pending.key})
	}
	return nil
}

// handleProtectionKey drives the Block/Warn/Confirm dialog shown by
// startEdit. Warn proceeds on any key; Confirm requires a typed "yes";
// Block never proceeds, only Esc closes it.
func (m *Model) handleProtectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	level := m.policy.Classify(m.protectionKey)

	if msg.String() == "esc" {
		m.pendingEdit = nil
		m.confirmInput.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	switch level {
	case protection.Warn:
		return m, m.proceedEdit()
	case protection.Confirm:
		return m.handleTypedYesKey(msg, m.proceedEdit)
	default: // Block
		return m, nil
	}
}

// proceedEdit launches the external editor for the edit a Warn/Confirm
// protection dialog just cleared.
func (m *Model) proceedEdit() tea.Cmd {
	pending := m.pendingEdit
	m.pendingEdit = nil
	m.confirmInput.Blur()
	m.mode = ModeNormal
	if pending == nil {
		return nil
	}
	return m.launchEditor(pending.key)
}

// handleTypedYesKey buffers msg into m.confirmInput and calls onConfirm
// only once the buffered text reads "yes" and Enter is pressed.
func (m *Model) handleTypedYesKey(msg tea.KeyMsg, onConfirm func() tea.Cmd) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		if strings.EqualFold(m.confirmInput.Value(), "yes") {
			return m, onConfirm()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.confirmInput, cmd = m.confirmInput.Update(msg)
	return m, cmd
}

func (m *Model) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pendingWrite = nil
		m.mode = ModeNormal
		return m, nil
	case "enter":
		if m.pendingWrite != nil {
			m.bus.Send(worker.Command{
				Kind:  worker.CmdWriteString,
				Key:   m.pendingWrite.key,
				Bytes: m.pendingWrite.newValue,
			})
		}
		m.pendingWrite = nil
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}
