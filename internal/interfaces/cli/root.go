// Package cli implementa la herramienta de línea de comandos taxcalc.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// Version se sobreescribe en build con -ldflags "-X .../cli.Version=...".
var Version = "dev"

// NewRootCmd arma el árbol de comandos. Los flujos se inyectan para poder probarlo.
func NewRootCmd(log *logger.Logger, stdin io.Reader, stdout io.Writer) *cobra.Command {
	if log == nil {
		log = logger.Nop()
	}
	root := &cobra.Command{
		Use:   "taxcalc",
		Short: "Calculador de totales HT/TTC, descuentos e impuestos",
		Long: `taxcalc ejecuta el mismo calculador que la API sobre un documento en JSON,
sin base de datos: las tasas viajan en el propio archivo de entrada.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)

	root.AddCommand(newComputeCmd(log.WithComponent("cli.compute")))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "taxcalc "+Version)
		},
	})
	return root
}
