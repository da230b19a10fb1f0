package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const engineHeader = `#pragma once
#include <string>

namespace vt {

/**
 * Engine - The central headless core that owns modules.
 *
 * Longer text that is ignored.
 */
class Engine : public Base {
public:
    Engine();
    ~Engine();

    bool connectAudio(Module* from, Module* to); // wires audio
    void setRegistry(ModuleRegistry* r) { registry_ = r; }
    std::vector<std::string> getModuleNames() const;
    virtual void execute(const std::string& cmd) = 0;
    void update();
    void render() override;
    const char* label() const { return "a(b);"; }

protected:
    void internalTick();

private:
    int counter_;
    void hidden();

public:
    EngineState getState() const;
    /* void commented(); */
};

}
`

func TestStripComments(t *testing.T) {
	src := "int a; // note\n/* block\n spans */ int b = '{'; const char* s = \"x(y);\";"

	assert.Equal(t, "int a; \n int b = '{'; const char* s = \"x(y);\";", StripComments(src, false))
	assert.Equal(t, "int a; \n int b = ''; const char* s = \"\";", StripComments(src, true))
}

func TestClassBodyMethods(t *testing.T) {
	got := ClassBodyMethods(engineHeader, NewExclude(DefaultExclude...))

	// Typed declarations come first in each section, then the rest.
	want := []string{"connectAudio", "setRegistry", "getModuleNames", "execute", "render", "label", "getState"}
	assert.Equal(t, want, got)
}

func TestClassBodyMethods_NoClass(t *testing.T) {
	assert.Empty(t, ClassBodyMethods("struct Foo { void bar(); };", nil))
	assert.NotNil(t, ClassBodyMethods("", nil))
}

func TestClassBodyMethods_UnbalancedBraces(t *testing.T) {
	assert.Empty(t, ClassBodyMethods("class Foo {\npublic:\n void bar();\n", nil))
}

func TestPublicMethods(t *testing.T) {
	got := PublicMethods(engineHeader, NewExclude(DefaultExclude...))

	want := []string{"connectAudio", "setRegistry", "getModuleNames", "execute", "render", "label", "getState"}
	assert.Equal(t, want, got)
}

func TestPublicMethods_Sections(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "private by default",
			src:  "class A {\n void hidden();\npublic:\n void shown();\n};",
			want: []string{"shown"},
		},
		{
			name: "class ends at closing brace",
			src:  "class A {\npublic:\n void a();\n};\nvoid freeFunction();",
			want: []string{"a"},
		},
		{
			name: "several classes",
			src:  "class A {\npublic:\n void a();\n};\nclass B {\npublic:\n B();\n void b();\n};",
			want: []string{"a", "b"},
		},
		{
			name: "brace on next line",
			src:  "class A : public Base\n{\npublic:\n void a();\n};",
			want: []string{"a"},
		},
		{
			name: "forward declaration is not a class",
			src:  "class A;\nvoid f();",
			want: []string{},
		},
		{
			name: "duplicates and overloads",
			src:  "class A {\npublic:\n void a(int);\n void a(float);\n};",
			want: []string{"a"},
		},
		{
			name: "nested braces keep the class open",
			src:  "class A {\npublic:\n void a() {\n  if (x) {\n  }\n }\n void b();\n};",
			want: []string{"a", "b"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicMethods(tc.src, nil))
		})
	}
}

func TestPublicMethods_Exclude(t *testing.T) {
	src := "class A {\npublic:\n void setup();\n void connect();\n};"
	assert.Equal(t, []string{"connect"}, PublicMethods(src, NewExclude("setup")))
	assert.Equal(t, []string{"setup", "connect"}, PublicMethods(src, nil))
}

func TestStructMembers(t *testing.T) {
	src := `struct Port;
class Module {
public:
    void setup();
};

struct TriggerEvent {
    TriggerEvent(float v);
    float value;
    bool isValid() const;
    void setup();
};

struct Other { void other(); };
`
	got := StructMembers(src, "TriggerEvent", NewExclude(DefaultExclude...))
	assert.Equal(t, []string{"isValid"}, got)

	assert.Empty(t, StructMembers(src, "Port", nil))
	assert.Empty(t, StructMembers(src, "Missing", nil))
}

func TestExtractorValid(t *testing.T) {
	assert.True(t, ExtractLines.Valid())
	assert.True(t, ExtractBody.Valid())
	assert.False(t, Extractor("regex").Valid())
}
