package main

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
	"github.com/kailas-cloud/geocoord/internal/domain/geo"
	healthuc "github.com/kailas-cloud/geocoord/internal/usecase/health"
	"github.com/kailas-cloud/geocoord/internal/version"
)

func newDistanceCmd(a *app) *cobra.Command {
	var precision int
	cmd := &cobra.Command{
		Use:     "distance POINT POINT",
		Short:   "Euclidean distance between two points",
		Example: "  geocoord distance c:12,3,9 s:0.5,0.923,4",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, q, err := parsePair(a.registry, args)
			if err != nil {
				return err
			}
			d, err := coord.Distance(p, q)
			if err != nil {
				return err
			}
			a.logger.Debug("Computed distance", zap.Stringer("a", p), zap.Stringer("b", q), zap.Float64("distance", d))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(d, precision))
			return err
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "Digits after the decimal point (-1 = shortest exact)")
	return cmd
}

func newAngleCmd(a *app) *cobra.Command {
	var (
		precision int
		degrees   bool
	)
	cmd := &cobra.Command{
		Use:     "angle POINT POINT",
		Short:   "Central angle between the rays through two points",
		Example: "  geocoord angle --degrees c:3,4,6.7 s:0.3,3.13,3",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, q, err := parsePair(a.registry, args)
			if err != nil {
				return err
			}
			rad, err := coord.CentralAngle(p, q)
			if err != nil {
				return err
			}
			angle := s1.Angle(rad) * s1.Radian
			v := angle.Radians()
			if degrees {
				v = angle.Degrees()
			}
			a.logger.Debug("Computed central angle", zap.Stringer("a", p), zap.Stringer("b", q), zap.Stringer("angle", angle))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(v, precision))
			return err
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "Digits after the decimal point (-1 = shortest exact)")
	cmd.Flags().BoolVarP(&degrees, "degrees", "d", false, "Print degrees instead of radians")
	return cmd
}

func newArcCmd(a *app) *cobra.Command {
	var precision int
	cmd := &cobra.Command{
		Use:     "arc POINT POINT",
		Short:   "Great-circle distance in meters on the Earth sphere between the rays through two points",
		Example: "  geocoord arc g:40.7128,-74.006 g:51.5074,-0.1278",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, q, err := parsePair(a.registry, args)
			if err != nil {
				return err
			}
			m, err := geo.ArcMeters(p, q)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatValue(m, precision))
			return err
		},
	}
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "Digits after the decimal point (-1 = shortest exact)")
	return cmd
}

func newEqualCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "equal POINT POINT",
		Short: "Report whether two points coincide within tolerance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, q, err := parsePair(a.registry, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), coord.Equal(p, q))
			return err
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert POINT",
		Short: "Convert a point to the other representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(a.registry, args[0])
			if err != nil {
				return err
			}
			var out fmt.Stringer
			switch p.Kind() {
			case coord.KindCartesian:
				out, err = p.AsSpherical()
			default:
				out, err = p.AsCartesian()
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the registry self-checks and print a JSON report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := healthuc.ForRegistry(a.registry).Check(cmd.Context())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if report.Status != healthuc.Healthy {
				return fmt.Errorf("health status %q", report.Status)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "geocoord %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
			return err
		},
	}
}
