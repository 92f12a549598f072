package checksum

import "ivy-resolve-cli/internal/domain"

// conventional sibling-file suffixes next to a published artifact
var (
	defaultChecksumExts = []string{"sha1", "md5"}
	defaultSignatureExt = "asc"
)

// Deriver fills in the conventional checksum and signature sibling locations
// for an artifact. It is pure and stateless; the input artifact's maps are
// never mutated.
type Deriver struct{}

// NewDeriver creates a new sibling deriver
func NewDeriver() *Deriver {
	return &Deriver{}
}

// WithDefaultChecksums returns the artifact with its checksum map extended by
// the default algorithm sibling URLs.
func (d *Deriver) WithDefaultChecksums(artifact domain.Artifact) domain.Artifact {
	checksums := make(map[string]string, len(artifact.Checksums)+len(defaultChecksumExts))
	for algorithm, url := range artifact.Checksums {
		checksums[algorithm] = url
	}
	for _, ext := range defaultChecksumExts {
		checksums[ext] = artifact.URL + "." + ext
	}
	artifact.Checksums = checksums
	return artifact
}

// WithDefaultSignature returns the artifact with the default signature
// sibling URL filled in.
func (d *Deriver) WithDefaultSignature(artifact domain.Artifact) domain.Artifact {
	signatures := make(map[string]string, len(artifact.Signatures)+1)
	for kind, url := range artifact.Signatures {
		signatures[kind] = url
	}
	signatures[defaultSignatureExt] = artifact.URL + "." + defaultSignatureExt
	artifact.Signatures = signatures
	return artifact
}
