// Package tui is the interactive roster browser built on Bubble Tea.
//
// The model keeps a state.AppState and changes it only through
// state.Transition; the Bubble Tea event loop is its single writer. Every
// frame is drawn from session.Project of that state.
package tui
