package xmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivy-resolve-cli/internal/xmltree"
)

func TestParse(t *testing.T) {
	t.Parallel()

	content := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<ivy-module version="2.0">
	<info organisation="com.example" module="core" revision="1.0.0"/>
	<configurations>
		<conf name="compile"/>
		<conf name="runtime" extends="compile"/>
	</configurations>
	<publications>
		<artifact name="core" type="jar"/>
	</publications>
</ivy-module>`)

	root, err := xmltree.Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "ivy-module", root.Label)
	assert.Equal(t, "2.0", root.Attr("version"))
	require.Len(t, root.Children, 3)

	info := root.Child("info")
	require.NotNil(t, info)
	assert.Equal(t, "com.example", info.Attr("organisation"))
	assert.Equal(t, "1.0.0", info.Attr("revision"))
	assert.Empty(t, info.Attr("absent"))

	confs := root.Child("configurations")
	require.NotNil(t, confs)
	assert.Len(t, confs.ChildrenNamed("conf"), 2)
	assert.Equal(t, "compile", confs.ChildrenNamed("conf")[0].Attr("name"))

	assert.Nil(t, root.Child("dependencies"))
	assert.Empty(t, root.ChildrenNamed("dependencies"))
}

func TestParse_NamespacedAttributes(t *testing.T) {
	t.Parallel()

	content := []byte(`<ivy-module version="2.0" xmlns:e="http://ant.apache.org/ivy/extra">
	<publications>
		<artifact name="core" e:classifier="sources"/>
	</publications>
</ivy-module>`)

	root, err := xmltree.Parse(content)
	require.NoError(t, err)

	artifact := root.Child("publications").Child("artifact")
	require.NotNil(t, artifact)
	// namespace prefixes are dropped
	assert.Equal(t, "sources", artifact.Attr("classifier"))
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	root, err := xmltree.Parse([]byte(`<root><child>hello</child></root>`))
	require.NoError(t, err)
	require.NotNil(t, root.Child("child"))
	assert.Equal(t, "hello", root.Child("child").Text)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty document",
			content: "",
		},
		{
			name:    "unclosed element",
			content: "<root><child></root>",
		},
		{
			name:    "not xml at all",
			content: "404 page not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := xmltree.Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}
