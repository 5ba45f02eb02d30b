package main

import (
	"bytes"
	"fmt"
	"os"

	"payloadkit/internal/instance"
	"payloadkit/internal/manifest"

	"github.com/spf13/cobra"
)

func newPrintCmd(a *app) *cobra.Command {
	var check string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the assembled configuration as YAML",
		Long: `Prints collections, globals, editor, bundler and adapter of this instance.
The connection string is never printed, only whether it is set.

With --check the manifest is compared against a saved file and the
command fails on any difference.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := instance.Build(a.cfg, a.log)
			if err != nil {
				return err
			}
			var cur bytes.Buffer
			if err := manifest.Encode(&cur, manifest.FromConfig(conf)); err != nil {
				return err
			}
			if check == "" {
				_, err := cmd.OutOrStdout().Write(cur.Bytes())
				return err
			}
			return checkManifest(check, cur.Bytes())
		},
	}
	cmd.Flags().StringVar(&check, "check", "", "Compare against a saved manifest instead of printing")
	return cmd
}

// checkManifest сравнивает нормализованные YAML: форматирование файла не важно.
func checkManifest(path string, current []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	saved, err := manifest.Decode(f)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}
	var norm bytes.Buffer
	if err := manifest.Encode(&norm, saved); err != nil {
		return err
	}
	if !bytes.Equal(norm.Bytes(), current) {
		return fmt.Errorf("manifest %s is out of date, regenerate it with `cms print`", path)
	}
	return nil
}
