/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fstranieri/cloudchat/models"
	"github.com/fstranieri/cloudchat/processor"
)

func newInfoCmd() *cobra.Command {
	var (
		output     string
		schemaPath string
	)
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the object type descriptor",
		Long: `Print the object type descriptor compiled into the models package, or
the one declared by a schema file when --file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := models.GetObjectTypeInfo()
			if schemaPath != "" {
				s, err := processor.LoadSchema(schemaPath)
				if err != nil {
					return err
				}
				info = s.Info()
			}
			return printValue(cmd.OutOrStdout(), output, info)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json)")
	cmd.Flags().StringVarP(&schemaPath, "file", "f", "", "Read the descriptor from a schema file")
	return cmd
}

func printValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
