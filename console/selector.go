package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sartorproj/cropforecast/market"
)

// Crop selection messages.
const (
	// CropPrompt asks for a crop name.
	CropPrompt = "\nEnter crop name (e.g., tomato): "
	// InvalidCrop is printed when the input names no known crop.
	InvalidCrop = "Invalid crop name. Try again."

	cropsHeading = "\nAvailable Crops:"
)

// ErrNoSelection is returned when input ends before a valid crop is chosen.
var ErrNoSelection = errors.New("input ended before a crop was selected")

// MatchCommodity trims and lower-cases input and reports whether it names
// one of known, which must already be lower-cased.
func MatchCommodity(input string, known []string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	for _, c := range known {
		if c == key {
			return key, true
		}
	}
	return "", false
}

// SelectCommodity lists known as a numbered menu and prompts until the user
// enters one of them. It returns the lower-cased selection.
func SelectCommodity(p *Prompter, known []string) (string, error) {
	p.Println(cropsHeading)
	for i, c := range known {
		p.Printf("%d. %s\n", i+1, market.DisplayName(c))
	}

	for {
		input, err := p.Ask(CropPrompt)
		if errors.Is(err, io.EOF) {
			return "", ErrNoSelection
		}
		if err != nil {
			return "", fmt.Errorf("read crop: %w", err)
		}

		if crop, ok := MatchCommodity(input, known); ok {
			return crop, nil
		}
		p.Println(InvalidCrop)
	}
}
