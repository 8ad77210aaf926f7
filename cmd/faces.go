package cmd

import (
	"attendance/config"
	"attendance/faces"
)

// loadRecognizer builds the face pipeline from the FACE_* settings
func loadRecognizer() (*faces.Recognizer, error) {
	mode, err := faces.ParseCropMode(config.FACE_CROP_MODE)
	if err != nil {
		return nil, err
	}
	pigoOpts := faces.DefaultPigoOptions
	pigoOpts.MinSize = config.FACE_MIN_SIZE
	pigoOpts.MaxSize = config.FACE_MAX_SIZE
	pigoOpts.MinQuality = float32(config.FACE_MIN_QUALITY)
	return faces.Load(faces.Options{
		Detector:        config.FACE_DETECTOR,
		DetectorModel:   config.FACE_DETECTOR_MODEL,
		DlibModelsDir:   config.FACE_DLIB_MODELS_DIR,
		DlibCNN:         config.FACE_DLIB_CNN,
		ClassifierModel: config.FACE_CLASSIFIER_MODEL,
		CropMode:        mode,
		Pigo:            pigoOpts,
	})
}
