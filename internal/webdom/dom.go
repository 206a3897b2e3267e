//go:build js && wasm

// Package webdom binds the review form to the browser DOM.
package webdom

import (
	"fmt"
	"syscall/js"

	"github.com/ppiankov/reviewlens/internal/submit"
)

// ByID looks up an element by id
func ByID(id string) (js.Value, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, fmt.Errorf("no element with id %q", id)
	}
	return el, nil
}

// Origin returns the page origin, e.g. "https://reviews.example"
func Origin() string {
	return js.Global().Get("location").Get("origin").String()
}

type event struct {
	v js.Value
}

func (e event) PreventDefault() {
	e.v.Call("preventDefault")
}

// Form is a <form> element
type Form struct {
	el        js.Value
	listeners []js.Func
}

// NewForm wraps el
func NewForm(el js.Value) *Form {
	return &Form{el: el}
}

// OnSubmit implements submit.Form
func (f *Form) OnSubmit(fn func(submit.Event)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(event{v: args[0]})
		return nil
	})
	f.listeners = append(f.listeners, cb)
	f.el.Call("addEventListener", "submit", cb)
}

// Release removes the listeners and frees their callbacks
func (f *Form) Release() {
	for _, cb := range f.listeners {
		f.el.Call("removeEventListener", "submit", cb)
		cb.Release()
	}
	f.listeners = nil
}

// Input is a text field
type Input struct {
	el js.Value
}

// NewInput wraps el
func NewInput(el js.Value) Input {
	return Input{el: el}
}

// Value implements submit.Input
func (i Input) Value() string {
	return i.el.Get("value").String()
}

// Output is the element that displays the result
type Output struct {
	el js.Value
}

// NewOutput wraps el
func NewOutput(el js.Value) Output {
	return Output{el: el}
}

// Show implements submit.Output
func (o Output) Show(d submit.Display) {
	o.el.Set("textContent", d.Text)
	o.el.Get("style").Set("color", d.Color)
}
