package model

// Mode is the operation the runner is currently performing
type Mode string

const (
	ModeIdle     Mode = "idle"
	ModeErasing  Mode = "erasing"
	ModeFlashing Mode = "flashing"
)

// AutoDetectPort is shown in place of the port list while esptool picks the port
const AutoDetectPort = "Automatic"

// Session is the complete front-end state. Values are never mutated in place:
// every change goes through Reduce and yields a new Session.
type Session struct {
	Ports       []string // ports offered for selection
	Port        string   // selected port, AutoDetectPort in auto-detect mode
	AutoDetect  bool
	Baud        BaudRate
	Busy        bool
	Mode        Mode
	EraseUsed   bool // erase_flash ran since the last full flash
	Slots       [ArtifactCount]Slot
	ProjectPath string
}

// NewSession returns the startup state for the given detected ports
func NewSession(ports []string) Session {
	s := Session{
		Baud: DefaultBaudRate,
		Mode: ModeIdle,
	}
	for i := range s.Slots {
		s.Slots[i] = NewSlot(ArtifactKind(i))
	}
	return setPorts(s, ports)
}

// Slot returns the slot for kind
func (s Session) Slot(kind ArtifactKind) Slot {
	return s.Slots[kind]
}

// AllIncluded reports whether every artifact is selected for flashing
func (s Session) AllIncluded() bool {
	for _, slot := range s.Slots {
		if !slot.Include {
			return false
		}
	}
	return true
}

// IncludedCount returns how many artifacts are selected for flashing
func (s Session) IncludedCount() int {
	n := 0
	for _, slot := range s.Slots {
		if slot.Include {
			n++
		}
	}
	return n
}

// NeedsEraseConfirmation reports whether a flash would leave the chip only
// partly programmed after an erase.
func (s Session) NeedsEraseConfirmation() bool {
	return s.EraseUsed && !s.AllIncluded()
}

// Record extracts the persisted part of the session
func (s Session) Record() ProjectRecord {
	r := ProjectRecord{
		Port: s.Port,
		Baud: s.Baud,
	}
	for i, slot := range s.Slots {
		r.Artifacts[i] = ArtifactRecord{Path: slot.Path, Include: slot.Include}
	}
	return r
}

// Action is a state transition applied by Reduce
type Action interface {
	apply(Session) Session
}

// Reduce returns the session that results from applying a to s
func Reduce(s Session, a Action) Session {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// SelectPort chooses a serial port. Ignored in auto-detect mode.
type SelectPort struct{ Port string }

func (a SelectPort) apply(s Session) Session {
	if s.AutoDetect {
		return s
	}
	s.Port = a.Port
	return s
}

// SetAutoDetect toggles auto-detect mode. Leaving it clears the port list;
// the caller rescans with SetPorts.
type SetAutoDetect struct{ Enabled bool }

func (a SetAutoDetect) apply(s Session) Session {
	s.AutoDetect = a.Enabled
	if a.Enabled {
		s.Ports = []string{AutoDetectPort}
		s.Port = AutoDetectPort
		return s
	}
	s.Ports = nil
	s.Port = ""
	return s
}

// SetPorts replaces the port list after a scan. Ignored in auto-detect mode.
type SetPorts struct{ Ports []string }

func (a SetPorts) apply(s Session) Session {
	if s.AutoDetect {
		return s
	}
	return setPorts(s, a.Ports)
}

func setPorts(s Session, ports []string) Session {
	s.Ports = append([]string(nil), ports...)
	for _, p := range s.Ports {
		if p == s.Port && p != "" {
			return s
		}
	}
	s.Port = ""
	if len(s.Ports) > 0 {
		s.Port = s.Ports[0]
	}
	return s
}

// SelectBaud chooses the baud rate. Unsupported rates are ignored.
type SelectBaud struct{ Baud BaudRate }

func (a SelectBaud) apply(s Session) Session {
	if a.Baud.Valid() {
		s.Baud = a.Baud
	}
	return s
}

// SetInclude toggles an artifact. The application is always included.
type SetInclude struct {
	Kind    ArtifactKind
	Include bool
}

func (a SetInclude) apply(s Session) Session {
	if !a.Kind.Valid() {
		return s
	}
	s.Slots[a.Kind].Include = a.Include || a.Kind == ArtifactApplication
	return s
}

// SetOffset edits an artifact's flash offset
type SetOffset struct {
	Kind   ArtifactKind
	Offset string
}

func (a SetOffset) apply(s Session) Session {
	if !a.Kind.Valid() {
		return s
	}
	s.Slots[a.Kind].Offset = a.Offset
	return s
}

// SetPath records the file chosen for an artifact
type SetPath struct {
	Kind ArtifactKind
	Path string
}

func (a SetPath) apply(s Session) Session {
	if !a.Kind.Valid() {
		return s
	}
	s.Slots[a.Kind].Path = a.Path
	s.Slots[a.Kind].PathSet = a.Path != ""
	return s
}

// ApplyProject populates port, baud and all four artifacts from a loaded
// project record in one step.
type ApplyProject struct{ Record ProjectRecord }

func (a ApplyProject) apply(s Session) Session {
	if !s.AutoDetect {
		s.Port = a.Record.Port
	}
	if a.Record.Baud.Valid() {
		s.Baud = a.Record.Baud
	}
	for i, art := range a.Record.Artifacts {
		slot := s.Slots[i]
		slot.Path = art.Path
		slot.PathSet = art.Path != ""
		slot.Include = art.Include || slot.Kind == ArtifactApplication
		s.Slots[i] = slot
	}
	return s
}

// SetProjectPath remembers the project file the session is bound to
type SetProjectPath struct{ Path string }

func (a SetProjectPath) apply(s Session) Session {
	s.ProjectPath = a.Path
	return s
}

// BeginOperation marks the runner busy with mode. An erase sets EraseUsed;
// a flash of all four artifacts clears it.
type BeginOperation struct{ Mode Mode }

func (a BeginOperation) apply(s Session) Session {
	s.Busy = true
	s.Mode = a.Mode
	switch a.Mode {
	case ModeErasing:
		s.EraseUsed = true
	case ModeFlashing:
		if s.AllIncluded() {
			s.EraseUsed = false
		}
	}
	return s
}

// EndOperation clears the busy flag and returns to idle
type EndOperation struct{}

func (EndOperation) apply(s Session) Session {
	s.Busy = false
	s.Mode = ModeIdle
	return s
}
