package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sonoprep/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Read text aloud with the system speech engine",
	Long: `Read text aloud with the system speech engine (say or espeak).

Formulas and units are expanded before speaking, so "1.54 mm/µs" is read
as "1.54 millimeters per microsecond".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printOnly, _ := cmd.Flags().GetBool("print")
		listVoices, _ := cmd.Flags().GetBool("list-voices")
		text := strings.Join(args, " ")

		if printOnly {
			if text == "" {
				return fmt.Errorf("nothing to print")
			}
			fmt.Println(speech.Sanitize(text))
			return nil
		}

		engine, err := speech.FindCommandEngine()
		if err != nil {
			return err
		}
		ctrl := speech.NewController(engine)

		if listVoices {
			voices, err := ctrl.Voices(cmd.Context())
			if err != nil {
				return fmt.Errorf("list voices: %w", err)
			}
			for _, v := range voices {
				fmt.Printf("%-24s  %s\n", v.Name, v.Language)
			}
			return nil
		}
		if text == "" {
			return fmt.Errorf("nothing to speak")
		}

		if err := applySpeechFlags(cmd, ctrl); err != nil {
			return err
		}

		if st, err := openStore(cmd); err == nil {
			tip, err := speech.NewBanner(st.KVRepo()).ShowOnce(cmd.Context())
			st.Close()
			if err == nil && tip != "" {
				fmt.Fprintln(os.Stderr, tip)
			}
		}

		return ctrl.Speak(cmd.Context(), text)
	},
}

// applySpeechFlags copies the flags the user set onto ctrl.
func applySpeechFlags(cmd *cobra.Command, ctrl *speech.Controller) error {
	flags := cmd.Flags()
	if flags.Changed("voice") {
		v, _ := flags.GetString("voice")
		if err := ctrl.SetVoice(v); err != nil {
			return err
		}
	}
	if flags.Changed("rate") {
		r, _ := flags.GetFloat64("rate")
		if err := ctrl.SetRate(r); err != nil {
			return err
		}
	}
	if flags.Changed("pitch") {
		p, _ := flags.GetFloat64("pitch")
		if err := ctrl.SetPitch(p); err != nil {
			return err
		}
	}
	if flags.Changed("volume") {
		v, _ := flags.GetFloat64("volume")
		if err := ctrl.SetVolume(v); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	d := speech.DefaultSettings()
	speakCmd.Flags().Bool("print", false, "Print the text as it would be spoken instead of speaking it")
	speakCmd.Flags().Bool("list-voices", false, "List the voices the speech engine offers")
	speakCmd.Flags().String("voice", "", "Voice name (see --list-voices)")
	speakCmd.Flags().Float64("rate", d.Rate, "Speaking rate, 1 is normal")
	speakCmd.Flags().Float64("pitch", d.Pitch, "Pitch, 0 to 2")
	speakCmd.Flags().Float64("volume", d.Volume, "Volume, 0 to 1")
}
