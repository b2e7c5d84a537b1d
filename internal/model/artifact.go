package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ArtifactKind identifies one of the four firmware images that can be flashed
type ArtifactKind int

const (
	ArtifactBootloader ArtifactKind = iota
	ArtifactApplication
	ArtifactPartitionTable
	ArtifactFilesystem
)

// ArtifactCount is the number of artifact slots in a session
const ArtifactCount = 4

// Default flash offsets
const (
	DefaultBootloaderOffset     = "0x1000"
	DefaultApplicationOffset    = "0x10000"
	DefaultPartitionTableOffset = "0x8000"
	DefaultFilesystemOffset     = "0x290000"
)

// FlashOrder is the order in which included artifacts are passed to write_flash
var FlashOrder = []ArtifactKind{
	ArtifactBootloader,
	ArtifactApplication,
	ArtifactFilesystem,
	ArtifactPartitionTable,
}

// DisplayOrder is the order artifacts are shown and validated in
var DisplayOrder = []ArtifactKind{
	ArtifactApplication,
	ArtifactPartitionTable,
	ArtifactFilesystem,
	ArtifactBootloader,
}

// String returns a human-friendly label for the artifact
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactBootloader:
		return "Bootloader"
	case ArtifactApplication:
		return "Application"
	case ArtifactPartitionTable:
		return "Partition Table"
	case ArtifactFilesystem:
		return "Spiffs data"
	default:
		return "Unknown"
	}
}

// Valid reports whether k names one of the four artifacts
func (k ArtifactKind) Valid() bool {
	return k >= ArtifactBootloader && k <= ArtifactFilesystem
}

// DefaultOffset returns the flash offset used when none was entered
func (k ArtifactKind) DefaultOffset() string {
	switch k {
	case ArtifactBootloader:
		return DefaultBootloaderOffset
	case ArtifactApplication:
		return DefaultApplicationOffset
	case ArtifactPartitionTable:
		return DefaultPartitionTableOffset
	case ArtifactFilesystem:
		return DefaultFilesystemOffset
	default:
		return ""
	}
}

// MissingFileMessage is reported when the artifact is included without a file
func (k ArtifactKind) MissingFileMessage() string {
	switch k {
	case ArtifactBootloader:
		return "no bootloader selected for flash"
	case ArtifactApplication:
		return "no app selected for flash"
	case ArtifactPartitionTable:
		return "no partition table selected for flash"
	case ArtifactFilesystem:
		return "no spiffs file selected for flash"
	default:
		return "no file selected for flash"
	}
}

// Slot holds the per-artifact selection made by the user
type Slot struct {
	Kind    ArtifactKind
	Include bool   // include in the next flash operation
	Offset  string // hexadecimal flash offset
	Path    string // absolute path of the binary
	PathSet bool   // path was explicitly chosen or loaded from a project
}

// NewSlot returns a slot with the default offset for kind. The application
// slot starts included.
func NewSlot(kind ArtifactKind) Slot {
	return Slot{
		Kind:    kind,
		Include: kind == ArtifactApplication,
		Offset:  kind.DefaultOffset(),
	}
}

// Ready reports whether the slot can take part in a flash operation
func (s Slot) Ready() bool {
	return !s.Include || s.PathSet
}

// ParseOffset parses a flash offset written in hexadecimal, with or without
// a 0x prefix.
func ParseOffset(offset string) (uint32, error) {
	v := strings.TrimSpace(offset)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if v == "" {
		return 0, fmt.Errorf("empty flash offset")
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid flash offset %q: %w", offset, err)
	}
	return uint32(n), nil
}
