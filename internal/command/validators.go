// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tfctl/colfilter/internal/grid"
	"github.com/tfctl/colfilter/internal/source"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	if s, ok := value.(string); !ok || !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func MismatchValidator(value any) error {
	s, _ := value.(string)
	if _, ok := grid.ParseVisible(s); !ok {
		return fmt.Errorf("must be one of [show hide only]")
	}
	return nil
}

func FormatValidator(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := source.ParseFormat(s)
	return err
}
