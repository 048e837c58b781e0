// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdef

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes the environment variables that override definition
// fields, e.g. MINERALMAP_OUTPUT or MINERALMAP_TILE_URL.
const EnvPrefix = "MINERALMAP_"

// Load builds a Definition by layering, from low to high precedence:
//  1. the built-in definition named by ref, or by the "base" key of the file
//  2. the YAML file at ref, when ref is not a built-in name
//  3. environment variables with EnvPrefix
//
// Tabs are replaced as a whole, never merged. The result is validated.
func Load(ref string) (*Definition, error) {
	k := koanf.New(".")

	var base *Definition

	if b, err := Builtin(ref); err == nil {
		base = b
	} else if strings.TrimSpace(ref) != "" {
		if err := k.Load(file.Provider(ref), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading map definition %s: %w", ref, err)
		}
	}

	// MINERALMAP_TILE_URL -> tile_url; underscores are kept to match the
	// koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var def Definition
	if err := k.UnmarshalWithConf("", &def, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding map definition %s: %w", ref, err)
	}

	if base == nil && def.Base != "" {
		b, err := Builtin(def.Base)
		if err != nil {
			return nil, fmt.Errorf("map definition %s: %w", ref, err)
		}

		base = b
	}

	def.applyDefaults(base)

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map definition %s: %w", def.Name, err)
	}

	return &def, nil
}
