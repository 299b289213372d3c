package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/engine"
)

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tINPUT")
	for _, name := range engine.Names() {
		a, err := engine.Lookup(name)
		if err != nil {
			return err
		}
		input := "array"
		if a.Graph {
			input = "graph"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, a.Title, input)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(configFile, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configFile)
	return nil
}
