// SPDX-License-Identifier: MIT
package models

import "errors"

// ErrSingularDesign indicates XᵀX + λI could not be inverted during the
// yield-residual ridge fit. Insufficient observations are NOT an error:
// they are reported through TrainResult.Status, since a thin outcome set is
// an expected operating condition, not a numeric failure.
var ErrSingularDesign = errors.New("models: residual design matrix is singular")
