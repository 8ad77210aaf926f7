package cmd

import (
	"attendance/config"
	"attendance/utils"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Run the face pipeline once on an image and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecognize,
}

type recognizeOutput struct {
	Recognized bool    `json:"recognized"`
	Identity   string  `json:"identity,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Box        []int   `json:"box,omitempty"`
}

func init() {
	flags := recognizeCmd.Flags()
	flags.StringVar(&config.FACE_DETECTOR_MODEL, "detector-model", config.FACE_DETECTOR_MODEL, "pigo cascade file")
	flags.StringVar(&config.FACE_CLASSIFIER_MODEL, "classifier-model", config.FACE_CLASSIFIER_MODEL, "SVM classifier artifact (JSON)")
	flags.StringVar(&config.FACE_CROP_MODE, "crop", config.FACE_CROP_MODE, "face crop: full or upper")
	rootCmd.AddCommand(recognizeCmd)
}

func runRecognize(cmd *cobra.Command, args []string) error {
	recognizer, err := loadRecognizer()
	if err != nil {
		return err
	}
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()
	img, _, err := utils.DecodeImage(file, int64(config.MAX_UPLOAD_MB)<<20)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := recognizeOutput{}
	box, found, err := recognizer.Locate(img)
	if err != nil {
		return err
	}
	if found {
		out.Box = []int{box.X1, box.Y1, box.X2, box.Y2}
	}
	match, ok, err := recognizer.Recognize(img)
	if err != nil {
		return err
	}
	if ok {
		out.Recognized = true
		out.Identity = match.Identity
		out.Confidence = match.Confidence
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
