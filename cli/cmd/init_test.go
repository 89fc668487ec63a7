package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create new config"},
		{name: "overwrite with force", force: true, exists: true},
		{name: "fail without force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var cli struct {
				Level string `default:"info"`
				Empty string
				Sub   struct {
					Depth int `default:"3"`
				} `cmd:""`
			}

			parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"sub"})
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), ktx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got struct {
				Level string `yaml:"level"`
				Empty string `yaml:"empty"`
				Sub   struct {
					Depth int `yaml:"depth"`
				} `yaml:"sub"`
				Existing bool `yaml:"existing"`
			}

			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			if got.Level != "info" || got.Sub.Depth != 3 || got.Existing {
				t.Errorf("unexpected config %+v:\n%s", got, data)
			}
		})
	}
}

func TestInit_NoContext(t *testing.T) {
	if err := (&Init{}).Run(context.Background()); !errors.Is(err, ErrWriteConfig) {
		t.Errorf("expected ErrWriteConfig, got %v", err)
	}
}
