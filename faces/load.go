package faces

import (
	"fmt"
)

const (
	DetectorPigo = "pigo"
	DetectorDlib = "dlib"
)

// Options describe where the pretrained artifacts live and how to use them
type Options struct {
	Detector        string // pigo or dlib
	DetectorModel   string // pigo cascade file
	DlibModelsDir   string
	DlibCNN         bool
	ClassifierModel string
	CropMode        CropMode
	Pigo            PigoOptions
}

// Load reads both pretrained models and builds the pipeline. Any error here is a
// configuration problem and should stop the process.
func Load(opts Options) (*Recognizer, error) {
	var detector Detector
	var err error
	switch opts.Detector {
	case "", DetectorPigo:
		detector, err = LoadPigoDetector(opts.DetectorModel, opts.Pigo)
	case DetectorDlib:
		detector, err = NewDlibDetector(opts.DlibModelsDir, opts.DlibCNN)
	default:
		err = fmt.Errorf("unknown detector %q", opts.Detector)
	}
	if err != nil {
		return nil, fmt.Errorf("face detector: %w", err)
	}
	classifier, err := LoadSVM(opts.ClassifierModel)
	if err != nil {
		return nil, err
	}
	if n := DescriptorLength(AnalysisSize, AnalysisSize); classifier.Dim() != n {
		return nil, fmt.Errorf("%w: classifier expects %d features, pipeline produces %d", ErrDescriptorShape, classifier.Dim(), n)
	}
	return NewRecognizer(NewLocator(detector, opts.CropMode), classifier), nil
}
