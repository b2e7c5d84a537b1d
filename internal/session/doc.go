// Package session owns the live front-end state. The Controller applies
// reducer actions under a mutex, starts erase and flash operations on the
// runner, and publishes every new Session to its subscribers.
package session
