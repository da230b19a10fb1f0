package hcl_adapter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/joho/godotenv"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// loadEnv returns the process environment overlaid on the given .env files.
// Variables already set in the process win over the files, matching
// godotenv.Load. Files that do not exist are skipped.
func loadEnv(files []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, file := range files {
		vals, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range vals {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			env[k] = v
		}
	}
	return env, nil
}

// newEvalContext builds the context project expressions are evaluated in.
func newEvalContext(env map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(env))
	for k, v := range env {
		// Names that cannot appear in a traversal, like PROGRAMFILES(X86),
		// are dropped.
		if hclsyntax.ValidIdentifier(k) {
			vals[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"homedir":   homedirFunc,
			"format":    stdlib.FormatFunc,
			"lower":     stdlib.LowerFunc,
			"upper":     stdlib.UpperFunc,
			"join":      stdlib.JoinFunc,
			"coalesce":  stdlib.CoalesceFunc,
			"lookup":    stdlib.LookupFunc,
			"concat":    stdlib.ConcatFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"tostring":  tostringFunc,
		},
	}
}

// homedirFunc returns the current user's home directory.
var homedirFunc = function.New(&function.Spec{
	Params: []function.Parameter{},
	Type:   function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return cty.UnknownVal(cty.String), err
		}
		return cty.StringVal(home), nil
	},
})

// tostringFunc converts a primitive value to a string, so numbers and bools
// coming from expressions can be used where the schema wants text.
var tostringFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "v", Type: cty.DynamicPseudoType, AllowNull: true},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		v, err := convert.Convert(args[0], cty.String)
		if err != nil {
			return cty.UnknownVal(cty.String), function.NewArgError(0, err)
		}
		return v, nil
	},
})
