package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/musical/log"
	"github.com/ardnew/musical/profile"
)

// defaultConfigIndent is the indent width of the generated file.
const defaultConfigIndent = 2

// Init writes the configuration file with the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.With(slog.String("reason", "no command context"))
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		return ErrWriteConfig.With(slog.String("reason", "config path undefined"))
	}

	_, err = os.Stat(confPath)
	switch {
	case err == nil && !i.Force:
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	data, err := yaml.MarshalWithOptions(buildConfig(ktx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath))

	return nil
}

// buildConfig collects the value of every persistent flag. Application flags
// are written at the top level; command flags are nested under the command
// name.
func buildConfig(ktx *kong.Context) yaml.MapSlice {
	out := flagItems(ktx, ktx.Model.Flags)

	var walk func(nodes []*kong.Node)

	walk = func(nodes []*kong.Node) {
		for _, node := range nodes {
			if node.Hidden {
				continue
			}

			if items := flagItems(ktx, node.Flags); len(items) > 0 {
				out = append(out, yaml.MapItem{Key: node.Name, Value: items})
			}

			walk(node.Children)
		}
	}

	walk(ktx.Model.Children)

	return out
}

var ignoreFlags = []string{"help", "version", profile.Tag}

func flagItems(ktx *kong.Context, flags []*kong.Flag) yaml.MapSlice {
	var items yaml.MapSlice

	for _, flag := range flags {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
			}
		default:
			items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return items
}
