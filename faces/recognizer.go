package faces

import (
	"image"
)

// Recognizer runs the full pipeline: locate the largest face, crop, describe and classify.
// It keeps no state between calls and is safe for concurrent use as long as the
// detector and the classifier are.
type Recognizer struct {
	locator    *Locator
	classifier Classifier
}

func NewRecognizer(locator *Locator, classifier Classifier) *Recognizer {
	return &Recognizer{locator: locator, classifier: classifier}
}

// Recognize identifies the single (largest) face on img. ok is false when no face was
// found or the face region is too small, errors are reserved for model faults.
func (r *Recognizer) Recognize(img image.Image) (m Match, ok bool, err error) {
	box, found, err := r.locator.Locate(img)
	if err != nil || !found {
		return Match{}, false, err
	}
	// Upper crop can shrink a valid box below the classifier minimum
	if box.Width() < MinCropSize || box.Height() < MinCropSize {
		return Match{}, false, nil
	}
	return r.Classify(Crop(img, box))
}

// Classify identifies an already cropped face region
func (r *Recognizer) Classify(crop image.Image) (Match, bool, error) {
	b := crop.Bounds()
	if b.Dx() < MinCropSize || b.Dy() < MinCropSize {
		return Match{}, false, nil
	}
	m, err := r.classifier.Predict(Describe(Normalize(crop)))
	if err != nil {
		return Match{}, false, err
	}
	return m, true, nil
}

// Locate exposes the locator stage, used for diagnostics
func (r *Recognizer) Locate(img image.Image) (Box, bool, error) {
	return r.locator.Locate(img)
}
