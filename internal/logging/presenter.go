// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"

	terrors "trigger/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Typed errors are shown without the kind prefix, which is meant for logs.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var e *terrors.E
	if errors.As(err, &e) {
		msg = e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s (%v)", e.Message, e.Err)
		}
	}
	return fmt.Sprintf("%s: %s", context, Mask(msg))
}
