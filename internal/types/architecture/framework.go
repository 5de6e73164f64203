package architecture

import (
	"errors"
	"fmt"
	"strings"
)

// Framework selects the prompt context and the fallback text used for an analysis.
type Framework string

const (
	FrameworkTOGAF    Framework = "TOGAF"
	FrameworkZachman  Framework = "Zachman"
	FrameworkISO42001 Framework = "ISO42001"
	FrameworkCustom   Framework = "Custom"
)

var ErrUnknownFramework = errors.New("architecture: unknown framework")

// Frameworks returns every supported framework in display order.
func Frameworks() []Framework {
	return []Framework{FrameworkTOGAF, FrameworkZachman, FrameworkISO42001, FrameworkCustom}
}

// ParseFramework accepts the canonical names case-insensitively, plus the
// spaced and dashed spellings of ISO 42001.
func ParseFramework(s string) (Framework, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "togaf":
		return FrameworkTOGAF, nil
	case "zachman":
		return FrameworkZachman, nil
	case "iso42001":
		return FrameworkISO42001, nil
	case "custom":
		return FrameworkCustom, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
}

// Valid reports whether f is one of the four supported frameworks.
func (f Framework) Valid() bool {
	switch f {
	case FrameworkTOGAF, FrameworkZachman, FrameworkISO42001, FrameworkCustom:
		return true
	}
	return false
}

// DisplayName is the label shown next to the framework selector.
func (f Framework) DisplayName() string {
	switch f {
	case FrameworkTOGAF:
		return "TOGAF 9.2"
	case FrameworkZachman:
		return "Zachman Framework"
	case FrameworkISO42001:
		return "ISO 42001"
	case FrameworkCustom:
		return "Custom Framework"
	}
	return string(f)
}
