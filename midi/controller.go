package midi

import gomidi "gitlab.com/gomidi/midi/v2"

// Controller is a connected grid instrument
type Controller interface {
	ID() string

	// Input events from the controller
	Events() <-chan Event

	// Raw output to the controller
	Send(msg gomidi.Message) error

	// Lifecycle
	Close() error
}
