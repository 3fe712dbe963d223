package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ehc "envelope_heat_calc/envelope_heat_calc"
)

var discretizeInput string

var discretizeCmd = &cobra.Command{
	Use:   "discretize",
	Short: "Print the thermal network of each construction of a building model",
	Long: `Discretize every construction of a building model and print its
segments, R-value and the number of timestep subdivisions required for
stability at the configured main timestep.

Examples:
  envelope_heat_calc discretize -i house.yaml
  envelope_heat_calc discretize -i house.json -c sim.ini`,
	RunE: runDiscretize,
}

func init() {
	rootCmd.AddCommand(discretizeCmd)

	discretizeCmd.Flags().StringVarP(&discretizeInput, "input", "i", "", "建物定義ファイル（JSON, YAML）またはURL [required]")
	discretizeCmd.MarkFlagRequired("input")
}

func runDiscretize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.NStepHourly <= 0 {
		return fmt.Errorf("n_step_hourly must be positive")
	}

	b, err := ehc.LoadBuilding(discretizeInput)
	if err != nil {
		return err
	}

	opts := ehc.DiscretizationOptions{
		MaxDx:              cfg.MaxDx,
		MainDt:             3600.0 / float64(cfg.NStepHourly),
		SafetyFactor:       cfg.SafetyFactor,
		MaxFilmCoefficient: cfg.MaxFilmCoefficient,
	}

	out := cmd.OutOrStdout()
	for i := range b.Constructions {
		c := &b.Constructions[i]
		d, err := ehc.Discretize(b, c, opts)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n\n", c.Name, err)
			continue
		}

		fmt.Fprintf(out, "═══ %s ═══\n", c.Name)
		fmt.Fprintf(out, "  R-value        %.4f m2K/W\n", d.RValue)
		fmt.Fprintf(out, "  nodes          %d (massive %d)\n", d.NNodes(), d.NMassiveNodes())
		fmt.Fprintf(out, "  subdivisions   %d\n\n", d.TstepSubdivision)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  #\tkind\tlayer\tthickness [m]\tR [m2K/W]\tC [J/m2K]\tgas")
		for k, seg := range d.Segments {
			gas := ""
			if seg.Kind == ehc.SegmentCavity {
				gas = string(seg.Gas)
			}
			fmt.Fprintf(w, "  %d\t%s\t%d\t%.4f\t%.5f\t%.0f\t%s\n", k, seg.Kind, seg.Layer, seg.Thickness, seg.R, seg.C, gas)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	if len(b.Constructions) == 0 {
		fmt.Fprintln(os.Stderr, "no constructions defined")
	}
	return nil
}
