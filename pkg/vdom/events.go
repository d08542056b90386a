package vdom

import "strings"

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + strings.ToLower(name), Handler: handler}
}

// IsEventProp reports whether a prop key names an event handler.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName returns the lowercase event name of an event prop key
// ("onClick" -> "click").
func EventName(key string) string {
	return strings.ToLower(key[2:])
}

// On handles an arbitrary event.
func On(name string, handler any) EventHandler { return event(name, handler) }

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }
