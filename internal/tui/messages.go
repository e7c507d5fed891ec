package tui

// exportDoneMsg reports the outcome of an xlsx export.
type exportDoneMsg struct {
	err  error
	path string
}

// clearStatusMsg drops a transient status message.
type clearStatusMsg struct {
	seq int
}
