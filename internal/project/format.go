package project

import (
	"gopkg.in/ini.v1"

	"github.com/espdfu/espdfu/internal/model"
)

// Section and key names
const (
	SectionFiles   = "files"
	SectionComPort = "comport"

	KeyPort     = "port"
	KeyBaudRate = "baudrate"
	KeyProjFile = "projfile"
)

// Boolean spellings. Only TrueValue reads back as true.
const (
	TrueValue  = "True"
	FalseValue = "False"
)

// artifactKeys names the file and selection keys of each artifact
type artifactKeys struct {
	file string
	sel  string
}

var keysByKind = [model.ArtifactCount]artifactKeys{
	model.ArtifactBootloader:     {file: "bootfile", sel: "bootsel"},
	model.ArtifactApplication:    {file: "binfile", sel: "binsel"},
	model.ArtifactPartitionTable: {file: "partitionfile", sel: "partitionsel"},
	model.ArtifactFilesystem:     {file: "spiffsfile", sel: "spiffssel"},
}

// fileKeyOrder is the order keys are written in, matching existing project files
var fileKeyOrder = []model.ArtifactKind{
	model.ArtifactApplication,
	model.ArtifactPartitionTable,
	model.ArtifactBootloader,
	model.ArtifactFilesystem,
}

// loadOptions match configparser. Names are case-insensitive; '#', ';' and a
// trailing '\' are part of the value.
var loadOptions = ini.LoadOptions{
	Insensitive:         true,
	IgnoreInlineComment: true,
	IgnoreContinuation:  true,
}

func formatBool(v bool) string {
	if v {
		return TrueValue
	}
	return FalseValue
}

func parseBool(s string) bool {
	return s == TrueValue
}
