package header

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDeclarations(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []Declaration
	}{
		{
			name: "class with bases",
			src: `
class ofApp : public ofBaseApp, private juce::Timer {
public:
    void setup();
};`,
			want: []Declaration{{Name: "ofApp", Kind: KindClass, Bases: []string{"ofBaseApp", "Timer"}}},
		},
		{
			name: "template base and final",
			src:  `class Sampler final : public Module, public Registry<std::string, int> {};`,
			want: []Declaration{{Name: "Sampler", Kind: KindClass, Bases: []string{"Module", "Registry"}}},
		},
		{
			name: "struct and plain class",
			src: `
struct TriggerEvent {
    float value;
};

class Clock
{
};`,
			want: []Declaration{
				{Name: "TriggerEvent", Kind: KindStruct},
				{Name: "Clock", Kind: KindClass},
			},
		},
		{
			name: "skips forward declarations enums templates and comments",
			src: `
class Engine;
enum class Mode { A, B };
template <class T> struct Box {};
// class Commented {};
/* class Blocked : public Engine {}; */
const char* s = "class InString {}";
`,
			want: []Declaration{{Name: "Box", Kind: KindStruct}},
		},
		{
			name: "virtual inheritance",
			src:  `class Both : public virtual Left, virtual public Right {};`,
			want: []Declaration{{Name: "Both", Kind: KindClass, Bases: []string{"Left", "Right"}}},
		},
		{
			name: "duplicate definitions reported once",
			src:  "class A {};\nclass A {};\n",
			want: []Declaration{{Name: "A", Kind: KindClass}},
		},
		{
			name: "enum keyword only when it stands alone",
			src: `
enum struct Flags { A, B };
enum
class Spread { C };
#define kenum
class Real {};
`,
			want: []Declaration{{Name: "Real", Kind: KindClass}},
		},
		{
			name: "nothing",
			src:  "#pragma once\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Declarations(tc.src)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Declarations() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeclarations_LargeHeader(t *testing.T) {
	var b strings.Builder
	const n = 5000
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "enum class Mode%d { A };\nclass Type%d : public Base {\npublic:\n    void run();\n};\n", i, i)
	}

	got := Declarations(b.String())

	if len(got) != n {
		t.Fatalf("got %d declarations, want %d", len(got), n)
	}
	if got[n-1].Name != fmt.Sprintf("Type%d", n-1) {
		t.Errorf("last declaration = %q", got[n-1].Name)
	}
}
