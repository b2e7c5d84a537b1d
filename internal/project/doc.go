// Package project reads and writes project files and the top-level settings
// file. Both are INI files compatible with those written by Python's
// configparser: project files hold the port, baud rate and artifact
// selections; the settings file remembers the last project opened.
package project
