// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/devblok/vkboot/device"
	"github.com/gobuffalo/envy"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/tryfunc"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Environment variables that override the configuration file.
const (
	EnvValidation         = "KORU_VALIDATION"
	EnvValidationLayer    = "KORU_VALIDATION_LAYER"
	EnvValidationSeverity = "KORU_VALIDATION_SEVERITY"
)

type configFile struct {
	Application *applicationBlock `hcl:"application,block"`
	Validation  *validationBlock  `hcl:"validation,block"`
	Renderer    *rendererBlock    `hcl:"renderer,block"`
	Time        *timeBlock        `hcl:"time,block"`
}

type applicationBlock struct {
	Name          *string `hcl:"name,optional"`
	Version       []int   `hcl:"version,optional"`
	EngineName    *string `hcl:"engine_name,optional"`
	EngineVersion []int   `hcl:"engine_version,optional"`
	APIVersion    []int   `hcl:"api_version,optional"`
}

type validationBlock struct {
	Enabled    *bool    `hcl:"enabled,optional"`
	Layer      *string  `hcl:"layer,optional"`
	Severities []string `hcl:"severities,optional"`
}

type rendererBlock struct {
	Title            *string  `hcl:"title,optional"`
	DeviceExtensions []string `hcl:"device_extensions,optional"`
	ScreenWidth      *uint32  `hcl:"width,optional"`
	ScreenHeight     *uint32  `hcl:"height,optional"`
}

type timeBlock struct {
	FramesPerSecond *int `hcl:"frames_per_second,optional"`
	EventPollDelay  *int `hcl:"event_poll_delay,optional"`
}

// LoadConfigurationFile reads and decodes an HCL configuration file.
func LoadConfigurationFile(path string) (Configuration, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}
	return LoadConfiguration(src, path)
}

// LoadConfiguration decodes an HCL configuration document. Anything
// the document leaves out keeps its DefaultConfiguration value.
// Expressions may refer to the process environment as env.NAME.
func LoadConfiguration(src []byte, filename string) (Configuration, error) {
	cfg := DefaultConfiguration()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
	}

	var parsed configFile
	if diags := gohcl.DecodeBody(file.Body, environmentContext(), &parsed); diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL file %s: %s", filename, diags.Error())
	}

	if err := parsed.apply(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration %s: %s", filename, err)
	}
	return cfg, nil
}

// environmentContext exposes the environment as env.NAME. The variables
// read by the application are always defined, as "" when unset.
func environmentContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, k := range []string{EnvValidation, EnvValidationLayer, EnvValidationSeverity, EnvLogLevel} {
		vars[k] = cty.StringVal("")
	}
	for k, v := range envy.Map() {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
		Functions: map[string]function.Function{
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
			"coalesce": stdlib.CoalesceFunc,
			"try":      tryfunc.TryFunc,
			"can":      tryfunc.CanFunc,
		},
	}
}

func (f configFile) apply(cfg *Configuration) error {
	if a := f.Application; a != nil {
		setString(&cfg.Application.Name, a.Name)
		setString(&cfg.Application.EngineName, a.EngineName)
		for _, v := range []struct {
			dst *device.Version
			src []int
			key string
		}{
			{&cfg.Application.Version, a.Version, "version"},
			{&cfg.Application.EngineVersion, a.EngineVersion, "engine_version"},
			{&cfg.Application.APIVersion, a.APIVersion, "api_version"},
		} {
			if v.src == nil {
				continue
			}
			parsed, err := versionFrom(v.src)
			if err != nil {
				return fmt.Errorf("application.%s: %s", v.key, err)
			}
			*v.dst = parsed
		}
	}

	if v := f.Validation; v != nil {
		if v.Enabled != nil {
			cfg.Validation.Enabled = *v.Enabled
		}
		setString(&cfg.Validation.Layer, v.Layer)
		if v.Severities != nil {
			cfg.Validation.Severities = v.Severities
		}
	}

	if r := f.Renderer; r != nil {
		setString(&cfg.Renderer.Title, r.Title)
		if r.DeviceExtensions != nil {
			cfg.Renderer.DeviceExtensions = r.DeviceExtensions
		}
		if r.ScreenWidth != nil {
			cfg.Renderer.ScreenWidth = *r.ScreenWidth
		}
		if r.ScreenHeight != nil {
			cfg.Renderer.ScreenHeight = *r.ScreenHeight
		}
	}

	if t := f.Time; t != nil {
		if t.FramesPerSecond != nil {
			cfg.Time.FramesPerSecond = *t.FramesPerSecond
		}
		if t.EventPollDelay != nil {
			cfg.Time.EventPollDelay = *t.EventPollDelay
		}
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func versionFrom(parts []int) (device.Version, error) {
	if len(parts) == 0 || len(parts) > 3 {
		return device.Version{}, fmt.Errorf("expected [major, minor, patch], got %d elements", len(parts))
	}
	for _, p := range parts {
		if p < 0 {
			return device.Version{}, fmt.Errorf("negative version component %d", p)
		}
	}
	var v device.Version
	v.Major = parts[0]
	if len(parts) > 1 {
		v.Minor = parts[1]
	}
	if len(parts) > 2 {
		v.Patch = parts[2]
	}
	return v, nil
}

// ApplyEnvironment overrides the validation policy from the environment.
func ApplyEnvironment(cfg *Configuration) error {
	if raw := envy.Get(EnvValidation, ""); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %s", EnvValidation, err)
		}
		cfg.Validation.Enabled = enabled
	}
	if layer := envy.Get(EnvValidationLayer, ""); layer != "" {
		cfg.Validation.Layer = layer
	}
	if raw := envy.Get(EnvValidationSeverity, ""); raw != "" {
		var severities []string
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				severities = append(severities, s)
			}
		}
		cfg.Validation.Severities = severities
	}
	return nil
}
