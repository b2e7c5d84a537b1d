package esptool

import (
	"fmt"

	"github.com/espdfu/espdfu/internal/model"
)

// ValidationError reports why a flash request was rejected before launch
type ValidationError struct {
	Kind    model.ArtifactKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks that every included artifact has an explicitly chosen file
// and a parseable flash offset, and that a port is chosen unless auto-detect
// is on. Artifacts are checked in display order and the first problem is
// returned.
func Validate(s model.Session) error {
	for _, kind := range model.DisplayOrder {
		slot := s.Slot(kind)
		if !slot.Ready() {
			return &ValidationError{Kind: kind, Message: kind.MissingFileMessage()}
		}
	}

	for _, kind := range model.DisplayOrder {
		slot := s.Slot(kind)
		if !slot.Include {
			continue
		}
		if _, err := model.ParseOffset(slot.Offset); err != nil {
			return &ValidationError{
				Kind:    kind,
				Message: fmt.Sprintf("invalid %s offset: %v", kind, err),
			}
		}
	}

	return ValidatePort(s)
}

// ValidatePort checks that esptool will be told which port to use
func ValidatePort(s model.Session) error {
	if !s.AutoDetect && s.Port == "" {
		return &ValidationError{Kind: -1, Message: "no serial port selected"}
	}
	return nil
}
