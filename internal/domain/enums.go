package domain

import "fmt"

type EventKind string

const (
	EventStart  EventKind = "START"
	EventPause  EventKind = "PAUSE"
	EventResume EventKind = "RESUME"
	EventFinish EventKind = "FINISH"
)

// eventKindAliases maps the raw strings found in legacy floor exports
// (the French terminal wrote DEBUT/REPRISE/FIN) onto the canonical kinds.
var eventKindAliases = map[string]EventKind{
	"START":   EventStart,
	"DEBUT":   EventStart,
	"PAUSE":   EventPause,
	"RESUME":  EventResume,
	"REPRISE": EventResume,
	"FINISH":  EventFinish,
	"FIN":     EventFinish,
}

// ParseEventKind maps a raw kind string onto the closed event kind set.
// Unknown kinds are rejected here, at the store boundary, so nothing
// downstream has to defend against them.
func ParseEventKind(s string) (EventKind, error) {
	if k, ok := eventKindAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown event kind %q", s)
}

// Valid reports whether k is one of the four canonical kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventStart, EventPause, EventResume, EventFinish:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionInProgress  SessionStatus = "in_progress"
	SessionPaused      SessionStatus = "paused"
	SessionPauseClosed SessionStatus = "pause_closed"
	SessionFinished    SessionStatus = "finished"
)
