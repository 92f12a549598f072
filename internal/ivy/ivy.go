package ivy

import (
	"fmt"
	"sort"
	"strings"

	"ivy-resolve-cli/internal/domain"
	"ivy-resolve-cli/internal/xmltree"
)

// attributes of a publications/artifact element that map to fixed
// Publication fields rather than the attributes bag
var reservedArtifactAttrs = map[string]bool{
	"name":       true,
	"type":       true,
	"ext":        true,
	"conf":       true,
	"classifier": true,
}

// Parser turns a parsed ivy metadata document into a project description.
type Parser struct{}

// NewParser creates a new metadata parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseProject reads version, configuration inheritance, and publications out
// of an ivy-module document. The returned configuration mapping is the
// transitive closure of the declared extends relations, so membership lookup
// is a single step for callers.
func (p *Parser) ParseProject(root *xmltree.Node) (*domain.Project, error) {
	info := root.Child("info")
	if info == nil {
		return nil, fmt.Errorf("ivy metadata: missing info element")
	}
	version := info.Attr("revision")
	if version == "" {
		return nil, fmt.Errorf("ivy metadata: info element has no revision")
	}

	extends := map[string][]string{}
	if confs := root.Child("configurations"); confs != nil {
		for _, conf := range confs.ChildrenNamed("conf") {
			name := conf.Attr("name")
			if name == "" {
				return nil, fmt.Errorf("ivy metadata: conf element has no name")
			}
			extends[name] = splitList(conf.Attr("extends"))
		}
	}

	var publications []domain.ConfiguredPublication
	if pubs := root.Child("publications"); pubs != nil {
		for _, artifact := range pubs.ChildrenNamed("artifact") {
			name := artifact.Attr("name")
			if name == "" {
				return nil, fmt.Errorf("ivy metadata: artifact element has no name")
			}

			typ := artifact.Attr("type")
			if typ == "" {
				typ = "jar"
			}
			ext := artifact.Attr("ext")
			if ext == "" {
				ext = typ
			}

			attributes := map[string]string{}
			for attr, value := range artifact.Attrs {
				if !reservedArtifactAttrs[attr] {
					attributes[attr] = value
				}
			}

			publication := domain.Publication{
				Type:       typ,
				Name:       name,
				Ext:        ext,
				Classifier: artifact.Attr("classifier"),
				Attributes: attributes,
			}

			confs := splitList(artifact.Attr("conf"))
			if len(confs) == 0 {
				confs = []string{"*"}
			}
			for _, conf := range confs {
				publications = append(publications, domain.ConfiguredPublication{
					Configuration: conf,
					Publication:   publication,
				})
			}
		}
	}

	return &domain.Project{
		Version:        version,
		Publications:   publications,
		Configurations: closure(extends),
	}, nil
}

// closure expands the direct extends relations into the full inherited set
// per configuration. A configuration is not a member of its own set; cycles
// terminate because every configuration is visited at most once.
func closure(extends map[string][]string) map[string][]string {
	all := make(map[string][]string, len(extends))
	for name := range extends {
		seen := map[string]bool{name: true}
		var walk func(string)
		walk = func(conf string) {
			for _, parent := range extends[conf] {
				if !seen[parent] {
					seen[parent] = true
					walk(parent)
				}
			}
		}
		walk(name)
		delete(seen, name)

		members := make([]string, 0, len(seen))
		for member := range seen {
			members = append(members, member)
		}
		sort.Strings(members)
		all[name] = members
	}
	return all
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
