// Package flash runs esptool. It owns the single runner slot, streams the
// tool's output to a console writer, classifies failures and keeps a record
// of every operation.
package flash
