package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/physics"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Ultrasound physics calculators",
}

var calcWavelengthCmd = &cobra.Command{
	Use:   "wavelength",
	Short: "Wavelength and period for a frequency",
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := speedFlag(cmd)
		if err != nil {
			return err
		}
		freq, _ := cmd.Flags().GetFloat64("freq")

		lambda, err := physics.Wavelength(speed, freq)
		if err != nil {
			return err
		}
		period, err := physics.Period(freq)
		if err != nil {
			return err
		}
		fmt.Printf("Wavelength: %.3f mm\n", lambda)
		fmt.Printf("Period:     %.3f µs\n", period)
		return nil
	},
}

var calcAttenuationCmd = &cobra.Command{
	Use:   "attenuation",
	Short: "Total attenuation and half-value layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		freq, _ := cmd.Flags().GetFloat64("freq")
		depth, _ := cmd.Flags().GetFloat64("depth")
		coef, _ := cmd.Flags().GetFloat64("coefficient")

		db, err := physics.Attenuation(freq, depth, coef)
		if err != nil {
			return err
		}
		hvl, err := physics.HalfValueLayer(freq, coef)
		if err != nil {
			return err
		}
		fmt.Printf("Attenuation:      %.2f dB\n", db)
		fmt.Printf("Half-value layer: %.2f cm\n", hvl)
		return nil
	},
}

var calcDopplerCmd = &cobra.Command{
	Use:   "doppler",
	Short: "Doppler frequency shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := speedFlag(cmd)
		if err != nil {
			return err
		}
		freq, _ := cmd.Flags().GetFloat64("freq")
		velocity, _ := cmd.Flags().GetFloat64("velocity")
		angle, _ := cmd.Flags().GetFloat64("angle")

		shift, err := physics.DopplerShift(freq, velocity, angle, speed)
		if err != nil {
			return err
		}
		fmt.Printf("Doppler shift: %.1f Hz\n", shift)
		return nil
	},
}

var calcAxialCmd = &cobra.Command{
	Use:   "axial",
	Short: "Spatial pulse length and axial resolution",
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := speedFlag(cmd)
		if err != nil {
			return err
		}
		freq, _ := cmd.Flags().GetFloat64("freq")
		cycles, _ := cmd.Flags().GetFloat64("cycles")

		spl, err := physics.SpatialPulseLength(cycles, speed, freq)
		if err != nil {
			return err
		}
		axial, err := physics.AxialResolution(cycles, speed, freq)
		if err != nil {
			return err
		}
		fmt.Printf("Spatial pulse length: %.3f mm\n", spl)
		fmt.Printf("Axial resolution:     %.3f mm\n", axial)
		return nil
	},
}

var calcPRFCmd = &cobra.Command{
	Use:   "prf",
	Short: "Pulse repetition period, frequency and duty factor for a depth",
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetFloat64("depth")
		duration, _ := cmd.Flags().GetFloat64("pulse-duration")

		prp, err := physics.PulseRepetitionPeriod(depth)
		if err != nil {
			return err
		}
		prf, err := physics.PulseRepetitionFrequency(depth)
		if err != nil {
			return err
		}
		fmt.Printf("PRP: %.1f µs\n", prp)
		fmt.Printf("PRF: %.0f Hz\n", prf)

		if duration > 0 {
			df, err := physics.DutyFactor(duration, prp)
			if err != nil {
				return err
			}
			fmt.Printf("Duty factor: %.3f%%\n", df)
		}
		return nil
	},
}

var calcNearZoneCmd = &cobra.Command{
	Use:   "nearzone",
	Short: "Near-zone length of an unfocused transducer",
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := speedFlag(cmd)
		if err != nil {
			return err
		}
		freq, _ := cmd.Flags().GetFloat64("freq")
		diameter, _ := cmd.Flags().GetFloat64("diameter")

		nzl, err := physics.NearZoneLength(diameter, speed, freq)
		if err != nil {
			return err
		}
		fmt.Printf("Near-zone length: %.1f mm\n", nzl)
		return nil
	},
}

// speedFlag returns --speed, or the speed of --tissue when given.
func speedFlag(cmd *cobra.Command) (float64, error) {
	if tissue, _ := cmd.Flags().GetString("tissue"); tissue != "" {
		speed, ok := physics.TissueSpeed(strings.ToLower(tissue))
		if !ok {
			names := make([]string, len(physics.Tissues))
			for i, t := range physics.Tissues {
				names[i] = t.Name
			}
			sort.Strings(names)
			return 0, fmt.Errorf("unknown tissue %q (known: %s)", tissue, strings.Join(names, ", "))
		}
		return speed, nil
	}
	speed, _ := cmd.Flags().GetFloat64("speed")
	return speed, nil
}

func addSpeedFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("speed", physics.SoftTissueSpeed, "Propagation speed in m/s")
	cmd.Flags().String("tissue", "", "Use the propagation speed of a tissue (e.g. fat, bone)")
}

func init() {
	for _, c := range []*cobra.Command{calcWavelengthCmd, calcAttenuationCmd, calcDopplerCmd, calcAxialCmd, calcNearZoneCmd} {
		c.Flags().Float64P("freq", "f", 5, "Transducer frequency in MHz")
	}
	for _, c := range []*cobra.Command{calcWavelengthCmd, calcDopplerCmd, calcAxialCmd, calcNearZoneCmd} {
		addSpeedFlags(c)
	}

	calcAttenuationCmd.Flags().Float64("depth", 1, "Path length in cm")
	calcAttenuationCmd.Flags().Float64("coefficient", physics.DefaultAttenuationCoefficient, "Attenuation coefficient in dB/cm/MHz")

	calcDopplerCmd.Flags().Float64("velocity", 0.5, "Reflector velocity in m/s")
	calcDopplerCmd.Flags().Float64("angle", 60, "Insonation angle in degrees")

	calcAxialCmd.Flags().Float64("cycles", 2, "Cycles per pulse")

	calcPRFCmd.Flags().Float64("depth", 10, "Imaging depth in cm")
	calcPRFCmd.Flags().Float64("pulse-duration", 0, "Pulse duration in µs, for the duty factor")

	calcNearZoneCmd.Flags().Float64("diameter", 10, "Aperture diameter in mm")

	calcCmd.AddCommand(calcWavelengthCmd, calcAttenuationCmd, calcDopplerCmd, calcAxialCmd, calcPRFCmd, calcNearZoneCmd)
}
