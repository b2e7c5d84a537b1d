package session

// EraseConfirmMessage is asked before a partial flash that follows an erase
const EraseConfirmMessage = `ESP32DFU detected use of "Erase ESP", which means you should reflash all files. Are you sure you want to continue?`

// Confirmer asks the user a yes/no question. answer may be called from any
// goroutine, at most once; never calling it counts as declining.
type Confirmer interface {
	Confirm(message string, answer func(bool))
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(message string, answer func(bool))

// Confirm calls f
func (f ConfirmFunc) Confirm(message string, answer func(bool)) {
	f(message, answer)
}

// AlwaysConfirm answers yes without asking
var AlwaysConfirm Confirmer = ConfirmFunc(func(_ string, answer func(bool)) { answer(true) })
