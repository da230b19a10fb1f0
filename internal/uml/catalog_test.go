package uml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/classcanvas/internal/config"
)

func TestNewCatalog(t *testing.T) {
	// --- Act ---
	c, err := NewCatalog(testProject())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"Clock", "Engine", "Module", "ModuleRegistry", "Sampler", "Sequencer", "ofApp", "ofBaseApp"}, c.Names())
	assert.Equal(t, 8, c.Len())

	sampler, ok := c.Get("Sampler")
	require.True(t, ok)
	assert.Equal(t, config.DefaultFallbackLayer, sampler.Layer)
	assert.Equal(t, "Module", sampler.Parent)

	module, _ := c.Get("Module")
	assert.True(t, module.Abstract)
	assert.Equal(t, []string{"Sampler", "Sequencer"}, module.Children)

	clock, _ := c.Get("Clock")
	assert.Equal(t, "ofxSoundOutput", clock.Parent)
	assert.Empty(t, clock.Children)

	assert.Equal(t, 1, c.Depth("Sequencer"))
	assert.Equal(t, 0, c.Depth("Clock"))
	assert.Equal(t, 0, c.Depth("Nope"))
}

func TestCatalog_MembersAndSorted(t *testing.T) {
	c, err := NewCatalog(testProject())
	require.NoError(t, err)

	names := func(cs []*Class) []string {
		var out []string
		for _, cls := range cs {
			out = append(out, cls.Name)
		}
		return out
	}

	assert.Equal(t, []string{"ofApp", "ofBaseApp"}, names(c.Members("application")))
	assert.Equal(t, []string{"ofBaseApp", "ofApp"}, names(c.Sorted("application")))
	assert.Equal(t, []string{"Clock", "Engine", "ModuleRegistry"}, names(c.Sorted("core")))
	assert.Equal(t, []string{"Sampler"}, names(c.Members(config.DefaultFallbackLayer)))
	assert.Equal(t, []string{"application", "core", "modules", "utilities"}, c.Layers(testProject()))
}

func TestNewCatalog_InheritanceErrors(t *testing.T) {
	testCases := []struct {
		name        string
		inheritance map[string]string
		wantErr     string
	}{
		{name: "cycle", inheritance: map[string]string{"A": "B", "B": "A"}, wantErr: "inheritance cycle detected"},
		{name: "self", inheritance: map[string]string{"A": "A"}, wantErr: "cannot derive from itself"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := config.New()
			p.Relations.Inheritance = tc.inheritance

			_, err := NewCatalog(p)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
