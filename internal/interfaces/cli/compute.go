package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain/taxcalc"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

// ComputeInput documento a calcular. A diferencia de la API, las tasas vienen en la entrada.
type ComputeInput struct {
	Items         []dto.LineItemRequest     `json:"items"`
	TaxRates      []TaxRateInput            `json:"tax_rates"`
	AmountBasis   string                    `json:"amount_basis"`
	TaxOperation  string                    `json:"tax_operation"`
	OrderDiscount *dto.OrderDiscountRequest `json:"order_discount,omitempty"`
}

// TaxRateInput tasa en porcentaje (18 = 18 %).
type TaxRateInput struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// ComputeOutput resultado impreso en stdout.
type ComputeOutput struct {
	AmountBasis  string                 `json:"amount_basis"`
	TaxOperation string                 `json:"tax_operation"`
	Totals       dto.CalculationTotals  `json:"totals"`
	Rounded      *dto.CalculationTotals `json:"rounded,omitempty"`
}

// ErrFault el calculador rechazó la entrada; main lo traduce a código de salida 2.
var ErrFault = errors.New("entrada rechazada por el calculador")

func newComputeCmd(log *logger.Logger) *cobra.Command {
	var (
		file   string
		pretty bool
		round  int32
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Calcula los totales de un documento JSON",
		Example: `  # Desde archivo, con copia redondeada a 2 decimales
  taxcalc compute --file devis.json --round 2 --pretty

  # Desde stdin
  cat devis.json | taxcalc compute --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeFn, err := openInput(cmd, file)
			if err != nil {
				return err
			}
			defer closeFn()

			var in ComputeInput
			if err := json.NewDecoder(src).Decode(&in); err != nil {
				return fmt.Errorf("leer entrada: %w", err)
			}

			start := time.Now()
			out, err := compute(in, round)
			if err != nil {
				var vErr *taxcalc.ValidationError
				if errors.As(err, &vErr) {
					field := billing.RequestField(vErr.Field)
					log.Warn().Str("field", field).Str("reason", vErr.Reason).Msg("cálculo rechazado")
					return fmt.Errorf("%w: %s: %s", ErrFault, field, vErr.Reason)
				}
				return err
			}
			log.Debug().
				Int("items", len(in.Items)).
				Int("tax_rates", len(in.TaxRates)).
				Dur("elapsed", time.Since(start)).
				Msg("cálculo completado")

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "archivo JSON de entrada (- = stdin)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "salida JSON indentada")
	cmd.Flags().Int32Var(&round, "round", -1, "decimales de la copia redondeada (-1 = sin copia)")
	return cmd
}

// compute aplica los mismos valores por defecto que la API cuando no hay empresa: HT y cumul.
func compute(in ComputeInput, round int32) (*ComputeOutput, error) {
	basis := lo.CoalesceOrEmpty(in.AmountBasis, string(taxcalc.BasisHT))
	op := lo.CoalesceOrEmpty(in.TaxOperation, string(taxcalc.OperationCumul))

	res, err := taxcalc.Calculate(taxcalc.Input{
		Items: billing.ToCalcItems(in.Items),
		TaxRates: lo.Map(in.TaxRates, func(r TaxRateInput, _ int) taxcalc.TaxRate {
			return taxcalc.TaxRate{Name: r.Name, Rate: r.Rate}
		}),
		AmountBasis:   taxcalc.AmountBasis(basis),
		TaxOperation:  taxcalc.TaxOperation(op),
		OrderDiscount: billing.ToCalcDiscount(in.OrderDiscount),
	})
	if err != nil {
		return nil, err
	}
	out := &ComputeOutput{AmountBasis: basis, TaxOperation: op, Totals: billing.ToTotals(res)}
	if round >= 0 {
		rounded := billing.ToTotals(res.Round(round))
		out.Rounded = &rounded
	}
	return out, nil
}

func openInput(cmd *cobra.Command, file string) (io.Reader, func(), error) {
	if file == "" || file == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir %s: %w", file, err)
	}
	return f, func() { _ = f.Close() }, nil
}
