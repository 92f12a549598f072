package domain

// Module identifies a unit of published code within a repository.
type Module struct {
	Organization string            `json:"organization"` // "com.example"
	Name         string            `json:"name"`         // "user-service"
	Attributes   map[string]string `json:"attributes"`   // extra pattern variables, e.g. {"platform": "jvm"}
}

// Dependency is a request for one version of a module in a given configuration.
type Dependency struct {
	Module        Module `json:"module"`
	Version       string `json:"version"`       // "1.4.2" or "2.0.0-SNAPSHOT"
	Configuration string `json:"configuration"` // "runtime", "compile", ...
}

// Publication is an artifact declared in a module's metadata.
type Publication struct {
	Type       string            `json:"type"`       // "jar", "pom", "ivy"
	Name       string            `json:"name"`       // artifact file stem
	Ext        string            `json:"ext"`        // "jar", "xml"
	Classifier string            `json:"classifier"` // "" when absent
	Attributes map[string]string `json:"attributes"` // carried through to the Artifact
}

// ConfiguredPublication pairs a publication with the configuration it belongs to.
type ConfiguredPublication struct {
	Configuration string      `json:"configuration"` // "*" means every configuration
	Publication   Publication `json:"publication"`
}

// Project is a resolved module description parsed from repository metadata.
type Project struct {
	Version        string                  `json:"version"`
	Publications   []ConfiguredPublication `json:"publications"`   // order preserved from the metadata document
	Configurations map[string][]string     `json:"configurations"` // configuration name -> configurations it extends
}

// Resolution is the outcome of resolving one dependency.
type Resolution struct {
	Dependency Dependency `json:"dependency"`
	Metadata   *Artifact  `json:"metadata,omitempty"` // metadata document location, nil when resolution failed early
	Artifacts  []Artifact `json:"artifacts"`
	Error      string     `json:"error,omitempty"`
}

// Artifact is a concrete downloadable file location.
type Artifact struct {
	URL        string            `json:"url"`
	Checksums  map[string]string `json:"checksums"`  // algorithm -> sibling URL, empty until derived
	Signatures map[string]string `json:"signatures"` // kind -> sibling URL, empty until derived
	Attributes map[string]string `json:"attributes"`
	Changing   bool              `json:"changing"` // content at URL may change over time (snapshots)
}
