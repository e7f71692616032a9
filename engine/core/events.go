package core

import "sync"

type EventContext struct {
	Data struct {
		I64 [2]int64
		U64 [2]uint64
		F64 [2]float64

		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		I16 [8]int16
		U16 [8]uint16

		I8 [16]int8
		U8 [16]uint8
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Keyboard key pressed. Key code in data.U16[0].
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02

	// Keyboard key released. Key code in data.U16[0].
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03

	// Mouse button pressed. Button in data.U16[0].
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04

	// Mouse button released. Button in data.U16[0].
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05

	// Mouse moved. Position in data.U16[0], data.U16[1].
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06

	// Mouse wheel. Delta in data.I8[0].
	EVENT_CODE_MOUSE_WHEEL SystemEventCode = 0x07

	// Resized/resolution changed from the OS. New size in data.U16[0], data.U16[1].
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	// Scene descriptor file changed on disk.
	EVENT_CODE_SCENE_RELOADED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const MAX_MESSAGE_CODES = 16384

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventCodeEntry struct {
	events []*registeredEvent
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var onceEvent sync.Once
var isInitialized bool = false
var eventState *eventSystemState = nil

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventInitialize() bool {
	if isInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	isInitialized = true
	return true
}

func EventShutdown() error {
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		if len(eventState.registered[i].events) != 0 {
			eventState.registered[i].events = nil
		}
	}
	return nil
}

// Register to listen for when events are sent with the provided code. Events
// with duplicate listener/callback combos are not registered again and cause
// this to return false.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.listener == listener {
			LogWarn("event listener already registered for code %d", code)
			return false
		}
	}
	event := &registeredEvent{
		listener: listener,
		callback: onEvent,
	}
	eventState.registered[code].events = append(eventState.registered[code].events, event)
	return true
}

// Unregister from listening for when events are sent with the provided code.
// If no matching registration is found, this function returns false.
func EventUnregister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !isInitialized {
		return false
	}
	events := eventState.registered[code].events
	if len(events) == 0 {
		return false
	}
	for i, e := range events {
		if e.listener == listener && e.callback != nil {
			eventState.registered[code].events = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fires an event to listeners of the given code. If an event handler returns
// true, the event is considered handled and is not passed on to any more
// listeners.
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if !isInitialized {
		return false
	}
	if len(eventState.registered[code].events) == 0 {
		return false
	}
	for _, e := range eventState.registered[code].events {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
