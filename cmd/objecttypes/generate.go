/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fstranieri/cloudchat/processor"
)

func newGenerateCmd() *cobra.Command {
	var (
		schemaPath string
		outPath    string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the object type registrar from a schema",
		Example: `  objecttypes generate -f object_types.yaml -o object_type_info.go
  objecttypes generate -f object_types.yaml        # print to stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath != "" {
				if err := processor.GenerateFile(schemaPath, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
				return nil
			}

			s, err := processor.LoadSchema(schemaPath)
			if err != nil {
				return err
			}
			src, err := processor.Generate(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(src)
			return err
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "file", "f", "", "Schema file (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
