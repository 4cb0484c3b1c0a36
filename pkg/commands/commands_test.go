package commands

import (
	"bytes"
	"net"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/roadmap"
)

func find(t *testing.T, root *cobra.Command, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find(args)
	require.NoError(t, err)
	return cmd
}

func TestCommandTree(t *testing.T) {
	root := New()
	for _, path := range [][]string{
		{"ui"}, {"get"}, {"summary"}, {"add", "feature"}, {"add", "theme"},
		{"edit", "feature"}, {"edit", "theme"}, {"delete", "feature"}, {"delete", "theme"},
		{"move"}, {"resize"}, {"assign"}, {"roadmaps"}, {"seed"}, {"mcp"}, {"version"},
		{"project"}, {"project", "edit"}, {"project", "add"}, {"project", "edit-person"}, {"project", "remove"},
	} {
		cmd := find(t, root, path...)
		assert.Equal(t, path[len(path)-1], cmd.Name(), path)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("roadmap"))
	assert.NotNil(t, root.PersistentFlags().Lookup("json"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestParseDelta(t *testing.T) {
	d, err := parseDelta("-3")
	require.NoError(t, err)
	assert.Equal(t, -3, d)
	_, err = parseDelta("two")
	assert.Error(t, err)
}

func TestNameArgs(t *testing.T) {
	var name string
	i := &options.InteractiveOptions{}
	check := nameArgs(&name, i)

	require.NoError(t, check(nil, []string{"Mobile", "App"}))
	assert.Equal(t, "Mobile App", name)
	assert.Error(t, check(nil, nil))

	i.Interactive = true
	assert.NoError(t, check(nil, nil))
}

func TestResizeNeedsOneEdge(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"resize", "abc", "2"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start-edge or --end-edge")
}

func TestOutputFormatValidated(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"get", "-o", "xml"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestThemeIDUngrouped(t *testing.T) {
	fo := options.FeatureOptions{Theme: options.Ungrouped}
	assert.Equal(t, "", fo.ThemeID())
	fo.Theme = "abc"
	assert.Equal(t, "abc", fo.ThemeID())
}

func TestListenURL(t *testing.T) {
	bound := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 41234}
	assert.Equal(t, "http://127.0.0.1:41234/mcp", listenURL(bound, "127.0.0.1", "/mcp", false))
	assert.Equal(t, "https://localhost:41234/mcp", listenURL(bound, "localhost", "/mcp", true))

	wild := &net.TCPAddr{IP: net.IPv6unspecified, Port: 8080}
	assert.Equal(t, "http://127.0.0.1:8080/rpc", listenURL(wild, "::", "/rpc", false))
	assert.Equal(t, "http://[::1]:8080/mcp", listenURL(wild, "::1", "/mcp", false))
}

func TestMCPFlags(t *testing.T) {
	cmd := find(t, New(), "mcp")
	for _, name := range []string{"transport", "http-host", "http-port", "http-path", "year"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "http", cmd.Flags().Lookup("transport").DefValue)
}

func TestRoadmapsEditFlags(t *testing.T) {
	cmd := find(t, New(), "roadmaps")
	for _, name := range []string{"create", "delete", "rename", "description"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestParseGroup(t *testing.T) {
	g, err := parseGroup([]string{"Stakeholders"})
	require.NoError(t, err)
	assert.Equal(t, roadmap.Stakeholders, g)

	_, err = parseGroup([]string{"robot"})
	assert.ErrorContains(t, err, "robot")
}

func TestProjectAddRejectsUnknownGroup(t *testing.T) {
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"project", "add", "robot", "--name", "R2", "--role", "Droid"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member or stakeholder")
}
