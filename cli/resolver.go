package cli

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/musical/cli/cmd"
)

// loadConfig is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys name long flags without the leading dashes. Nested mappings are joined
// with a hyphen, and underscores may stand in for hyphens, so the following
// are equivalent:
//
//	log-level: debug
//
//	log_level: debug
//
//	log:
//	  level: debug
//
// Flags of a subcommand may be qualified by the command name ("run-format",
// or "format" nested under "run"). Flags given on the command line override values from the file.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return config{}, nil
	}

	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, cmd.ErrReadConfig.Wrap(err)
	}

	cfg := make(config, len(root))
	cfg.flatten("", root)

	return cfg, nil
}

// config implements [kong.Resolver] over a flat map of flag names.
type config map[string]any

func (c config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := val.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = scalar(val)
	}
}

// scalar converts a decoded YAML value into the form kong decodes flags from.
// Numbers become strings and sequences become comma-separated lists.
func scalar(val any) any {
	switch v := val.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(scalar(e))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. A key qualified by the command name,
// such as "run-format", takes precedence over the bare flag name.
func (c config) Resolve(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	if parent != nil && parent.Command != nil {
		if v, ok := c[parent.Command.Name+"-"+flag.Name]; ok {
			return v, nil
		}
	}

	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
