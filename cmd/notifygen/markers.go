package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qian-o/CodeGenerator/internal/annotations"
)

func newMarkersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List the supported markers",
		Args:  cobra.NoArgs,
		RunE:  runMarkers,
	}
	cmd.Flags().String("shim", "", "print the runtime shim for the named package instead")
	return cmd
}

func runMarkers(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if pkg, _ := cmd.Flags().GetString("shim"); pkg != "" {
		src, err := annotations.ShimSource(pkg)
		if err != nil {
			return err
		}
		fmt.Fprint(out, src)
		return nil
	}

	aliases, _ := cmd.Flags().GetStringSlice("alias")
	registry, err := annotations.NewBuiltinRegistry(aliases...)
	if err != nil {
		return err
	}

	namespaces := append([]string{annotations.CanonicalNamespace}, registry.Aliases()...)
	for _, schema := range registry.Schemas() {
		fmt.Fprintf(out, "//%s:%s  (%s)\n", annotations.CanonicalNamespace, schema.Name, schema.Target)
		fmt.Fprintf(out, "    %s\n", schema.Description)
		if len(namespaces) > 1 {
			fmt.Fprintf(out, "    namespaces: %s\n", strings.Join(namespaces, ", "))
		}
		for _, example := range schema.Examples {
			fmt.Fprintf(out, "    %s\n", example)
		}
		fmt.Fprintln(out)
	}
	return nil
}
