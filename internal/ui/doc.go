// Package ui contains the Fyne-based desktop user interface. It renders the
// session held by the session controller, forwards user input to it and shows
// esptool output in a console view. All UI strings are localized via
// Localization.
package ui
