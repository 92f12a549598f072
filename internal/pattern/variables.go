package pattern

import (
	"strings"

	"ivy-resolve-cli/internal/domain"
)

// Variables assembles the substitution environment for one artifact of a
// module. The organization is published under both spellings for layout
// compatibility, and additionally as a slash-separated path. The classifier
// key is only present when a classifier is given, so that classifier
// placeholders outside an optional clause stay mandatory. Module attributes
// are merged last and may override any fixed key.
func Variables(mod domain.Module, revision, typ, artifact, ext, classifier string) map[string]string {
	vars := map[string]string{
		"organization": mod.Organization,
		"organisation": mod.Organization,
		"orgPath":      strings.ReplaceAll(mod.Organization, ".", "/"),
		"module":       mod.Name,
		"revision":     revision,
		"type":         typ,
		"artifact":     artifact,
		"ext":          ext,
	}
	if classifier != "" {
		vars["classifier"] = classifier
	}
	for name, value := range mod.Attributes {
		vars[name] = value
	}
	return vars
}
