// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tropy/ttp/internal/output"
)

const maxIndent = 16

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
	s, ok := value.(string)
	if !ok || !slices.Contains(output.Formats, s) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func PaddingValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return fmt.Errorf("must be zero or more")
	}
	return nil
}

func IndentValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 || n > maxIndent {
		return fmt.Errorf("must be between 1 and %d", maxIndent)
	}
	return nil
}
