package appointment

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	referencePrefix   = "APT-"
	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceLength   = 7
)

// NewReference returns a short code patients can read out on the phone.
func NewReference() (string, error) {
	id, err := gonanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return "", err
	}
	return referencePrefix + id, nil
}
