// Package platform contains OS integration: serial port enumeration, file
// selection helpers, locating the esptool executable and revealing files in
// the system file manager.
package platform
