package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	// A DOM button element rather than a pointer device.
	BUTTON_ELEMENT
	BUTTON_MAX_BUTTONS
)

// Key code definitions. Only the keys the demos react to are mapped by the hosts.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_Q       KeyCode = 0x51
)
