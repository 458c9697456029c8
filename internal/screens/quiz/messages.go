package quiz

// speechDoneMsg is sent when a read-aloud command finishes or fails.
type speechDoneMsg struct {
	Err error
}
