package breakout

// NumKeys is the size of the key-state table.
const NumKeys = 1024

// Key codes follow the GLFW numbering so window key events can be stored
// without translation. Terminal input is mapped onto the same codes.
const (
	KeySpace  = 32
	KeyA      = 65
	KeyD      = 68
	KeyEscape = 256
	KeyEnter  = 257
	KeyRight  = 262
	KeyLeft   = 263
	KeyDown   = 264
	KeyUp     = 265
)

// KeyTable records which keys are currently held.
type KeyTable [NumKeys]bool

// Set records a press or release.
func (k *KeyTable) Set(code int, pressed bool) error {
	if code < 0 || code >= NumKeys {
		return &KeyError{Code: code}
	}
	k[code] = pressed
	return nil
}

// Down reports whether any of the given keys is held. Codes outside the
// table are never held.
func (k *KeyTable) Down(codes ...int) bool {
	for _, c := range codes {
		if c >= 0 && c < NumKeys && k[c] {
			return true
		}
	}
	return false
}

// Reset releases every key.
func (k *KeyTable) Reset() {
	*k = KeyTable{}
}
