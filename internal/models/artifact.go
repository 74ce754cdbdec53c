package models

// ArtifactKind identifies the emitter that produced an artifact
type ArtifactKind int

const (
	ShimArtifact ArtifactKind = iota
	PropertyArtifact
	CommandArtifact
)

// String returns the string representation of the artifact kind
func (k ArtifactKind) String() string {
	switch k {
	case ShimArtifact:
		return "shim"
	case PropertyArtifact:
		return "notify"
	case CommandArtifact:
		return "commands"
	default:
		return "unknown"
	}
}

// Artifact is one generated source file
type Artifact struct {
	ID      string         `json:"id" msgpack:"id"`
	Kind    ArtifactKind   `json:"kind" msgpack:"kind"`
	Type    TypeDescriptor `json:"type" msgpack:"type"`
	Members []string       `json:"members,omitempty" msgpack:"members,omitempty"`
	Content string         `json:"content" msgpack:"content"`
}

// ArtifactSet is the output of one generation pass over one package
type ArtifactSet struct {
	PassID      string     `json:"pass" msgpack:"pass"`
	PackageName string     `json:"package" msgpack:"package"`
	PackagePath string     `json:"path" msgpack:"path"`
	Dir         string     `json:"dir" msgpack:"dir"`
	Artifacts   []Artifact `json:"artifacts" msgpack:"artifacts"`
	Candidates  int        `json:"candidates" msgpack:"candidates"`
}

// IDs returns artifact ids in registration order
func (s *ArtifactSet) IDs() []string {
	ids := make([]string, len(s.Artifacts))
	for i, a := range s.Artifacts {
		ids[i] = a.ID
	}
	return ids
}

// Find returns the artifact registered under id
func (s *ArtifactSet) Find(id string) (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}

// CountKind returns the number of artifacts of kind
func (s *ArtifactSet) CountKind(kind ArtifactKind) int {
	n := 0
	for _, a := range s.Artifacts {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// GeneratedHeader is the first line of every generated file
const GeneratedHeader = "// Code generated by notifygen. DO NOT EDIT."
