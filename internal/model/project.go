package model

// ArtifactRecord is the persisted selection for one artifact
type ArtifactRecord struct {
	Path    string
	Include bool
}

// ProjectRecord is the persisted bundle of port, baud and artifact
// selections. Offsets are not part of a project.
type ProjectRecord struct {
	Port      string
	Baud      BaudRate
	Artifacts [ArtifactCount]ArtifactRecord
}

// Artifact returns the record for kind
func (r ProjectRecord) Artifact(kind ArtifactKind) ArtifactRecord {
	return r.Artifacts[kind]
}
