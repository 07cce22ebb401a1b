package core

// EventContext carries the payload of a fired event. Only the fields relevant
// to the event code are set.
type EventContext struct {
	KeyCode KeyCode
	Button  Button
	X, Y    float64
	Width   uint32
	Height  uint32
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * key_code = data.KeyCode
	 */
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse or DOM button pressed.
	/* Context usage:
	 * button = data.Button
	 * x, y = data.X, data.Y (zero for DOM buttons)
	 */
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released.
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * width, height = data.Width, data.Height
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener interface{}, data EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches host events to registered listeners. It is owned by
// the engine and used from the frame goroutine only.
type EventBus struct {
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listener/callback combos will not be registered again and will cause this to return false.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param onEvent The callback invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (b *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if onEvent == nil {
		return false
	}
	for _, e := range b.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// Unregister removes the registration of listener for code. Returns false if
// no such registration exists.
func (b *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * @returns true if handled, otherwise false.
 */
func (b *EventBus) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	for _, e := range b.registered[code] {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() {
	b.registered = make(map[SystemEventCode][]*registeredEvent)
}
