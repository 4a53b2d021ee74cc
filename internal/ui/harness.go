package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests.
// It never starts the dispatcher pump; posted callbacks run only when the
// test drains them.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Start issues the initial fetches without arming the dispatcher pump.
func (h *Harness) Start() {
	if h.model == nil {
		return
	}
	h.model.start()
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.processCmd(c)
			}
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// Step runs the oldest posted callback through Update. It reports false
// when nothing was queued.
func (h *Harness) Step() bool {
	fn, ok := h.model.dispatcher.TryNext()
	if !ok {
		return false
	}
	h.Send(dispatchMsg{fn: fn})
	return true
}

// Drain waits for every submitted fetch and runs the posted callbacks until
// the model settles, including fetches issued by those callbacks.
func (h *Harness) Drain() {
	if h.model == nil {
		return
	}
	for {
		h.model.runner.Wait()
		ran := false
		for h.Step() {
			ran = true
		}
		if !ran {
			return
		}
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
