// SPDX-License-Identifier: MIT
// Package contract is the external boundary surface: plain-data entry
// points over build_graph/query_farm_status/irrigation_schedule/
// nutrient_report/yield_forecast/detect_anomalies/update_features/
// train_yield_residual/generate_synthetic, a process-wide graph cache and
// trained-residual cell, and serialization to/from the wire format.
package contract

import "github.com/pkg/errors"

// Sentinel categories. pkg/errors.Wrap is used at this boundary (per the
// contract's error-category taxonomy) rather than bare fmt.Errorf, since
// these errors are the ones most likely to cross into a caller's own
// logging/reporting stack and benefit from a captured stack trace.
var (
	ErrConfig        = errors.New("contract: invalid farm configuration")
	ErrDeserialize   = errors.New("contract: deserialization failed")
	ErrGraphNotFound = errors.New("contract: farm id not present in cache")
)

// Per-layer reconstruction failures, always surfaced wrapped with the layer
// name via wrapDeserialize.
var (
	errInconsistentIncidence = errors.New("incidence arrays inconsistent with edge count")
	errInconsistentFeatures  = errors.New("vertex_features inconsistent with n_vertices")
	errInconsistentHistory   = errors.New("feature_history inconsistent with ring-buffer bounds")
)

func wrapDeserialize(layer string, err error) error {
	return errors.Wrapf(ErrDeserialize, "layer %q: %v", layer, err)
}

func missingKeyError(key string) error {
	return errors.Wrapf(ErrDeserialize, "missing top-level key %q", key)
}
