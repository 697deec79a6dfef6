package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a firmware profile",
	Long: `Validate a firmware profile YAML file and print a summary of the
resulting profile (defaults merged with the overlay).

Example:
  bmsmon validate -p firmware.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("profile", "p", "", "path to profile file (required)")
	_ = validateCmd.MarkFlagRequired("profile")
}

func runValidate(cmd *cobra.Command, args []string) error {
	profilePath, _ := cmd.Flags().GetString("profile")

	prof, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "profile %q is valid\n", prof.Name)
	fmt.Fprintf(out, "  pages:          %s %s %s\n", prof.MainPath, prof.CellVoltagePath, prof.CellTemperaturePath)
	fmt.Fprintf(out, "  keys:           %s / %s / %s\n", prof.MainKey, prof.TopologyKey, prof.ArrayKey)
	fmt.Fprintf(out, "  splits:         %d cells / %d sensors\n", prof.VoltageSplit, prof.TempSplit)
	fmt.Fprintf(out, "  voltage fence:  %d-%d mV\n", prof.VoltageFence.Lo, prof.VoltageFence.Hi)
	if f := prof.VoltageReportFence; f != nil {
		fmt.Fprintf(out, "  report fence:   %d-%d mV\n", f.Lo, f.Hi)
	}
	fmt.Fprintf(out, "  temp fence:     %g-%g °C\n", prof.TempFence.Lo, prof.TempFence.Hi)
	return nil
}
