// Package config loads render options from configuration files.
//
// The format is chosen by file extension: .toml is decoded with
// BurntSushi/toml, .yaml and .yml with gopkg.in/yaml.v3, and .json with
// encoding/json. Keys match the JSON names of [pipeline.Options]:
//
//	time_unit = 50
//	block_width = 100
//	show_time_line = true
//	formats = ["html"]
//
//	[[tiers]]
//	name = "words"
//	reference = true
//
//	[[tiers]]
//	name = "gloss"
//	italic = true
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/pipeline"
)

// Format identifies a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat returns the format for path based on its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %s (use .toml, .yaml, .yml or .json)", filepath.Base(path))
}

// Load reads options from the file at path. Defaults are not applied.
func Load(path string) (pipeline.Options, error) {
	if err := errors.ValidatePath(path); err != nil {
		return pipeline.Options{}, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return pipeline.Options{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes options from data in the given format.
func Parse(data []byte, format Format) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error

	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &opts)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&opts); err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&opts)
	default:
		return opts, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}

	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", format)
	}
	return opts, nil
}
