// Package esptool turns a session into the argument list understood by the
// esptool flashing utility, and checks that a flash request is complete
// before anything is launched.
package esptool
