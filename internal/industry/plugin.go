package industry

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gopkg.in/yaml.v3"
)

const pluginFuncName = "IndustryProfiles"

// loadPluginFile evaluates one user-supplied .go file and collects the
// profiles it declares via IndustryProfiles() ([]map[string]any, error).
// Each returned map is round-tripped through YAML so plugin profiles pass
// through exactly the same validation as file-based ones.
func loadPluginFile(path string) ([]ProfileFile, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("industry: read plugin %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("industry: plugin %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("industry: plugin interpreter: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("industry: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(pluginFuncName)
	if err != nil {
		return nil, fmt.Errorf("industry: %s must define %s() ([]map[string]any, error): %w", path, pluginFuncName, err)
	}
	raws, callErr := invokeProfileFunc(fnValue)
	if callErr != nil {
		return nil, fmt.Errorf("industry: %s: %w", path, callErr)
	}
	profiles := make([]ProfileFile, 0, len(raws))
	for idx, raw := range raws {
		payload, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("industry: %s profile[%d]: %w", path, idx, err)
		}
		parsed, err := ParseProfileYAML(payload)
		if err != nil {
			return nil, fmt.Errorf("industry: %s profile[%d]: %w", path, idx, err)
		}
		profiles = append(profiles, ProfileFile{Profile: parsed, Path: fmt.Sprintf("%s#%d", path, idx+1)})
	}
	return profiles, nil
}

func invokeProfileFunc(value reflect.Value) ([]map[string]any, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", pluginFuncName)
	}
	if value.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", pluginFuncName)
	}
	results := value.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return ([]map[string]any[, error])", pluginFuncName)
	}
	if len(results) == 2 && !results[1].IsNil() {
		if e, ok := results[1].Interface().(error); ok && e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s returned non-error second value", pluginFuncName)
	}
	if raws, ok := results[0].Interface().([]map[string]any); ok {
		return raws, nil
	}
	if results[0].Kind() == reflect.Slice {
		out := make([]map[string]any, results[0].Len())
		for i := 0; i < results[0].Len(); i++ {
			entry, ok := results[0].Index(i).Interface().(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not map[string]any", pluginFuncName, i)
			}
			out[i] = entry
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s must return []map[string]any", pluginFuncName)
}
