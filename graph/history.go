// SPDX-License-Identifier: MIT
package graph

// PushFeatures writes vec into vertex row's current feature slot and
// appends it to layer's ring buffer at the shared history head, then
// replaces the live feature row with vec. Only min(len(vec), FeatureDim)
// elements are copied into the live row; a shorter vec leaves its remaining
// columns untouched, while the history slot stores zeros for them. Elements
// beyond FeatureDim are ignored. history_head advances mod
// HistoryDepth (1-indexed); history_length saturates at HistoryDepth.
func PushFeatures(g *LayeredHyperGraph, layer LayerTag, vertexID string, vec []float32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.Layers[layer]
	if !ok {
		return wrapf(ErrLayerNotFound, "push_features: layer %q", layer)
	}
	row, ok := g.vertexIdx[vertexID]
	if !ok {
		return wrapf(ErrVertexNotFound, "push_features: vertex %q", vertexID)
	}

	n := len(vec)
	if n > l.FeatureDim {
		n = l.FeatureDim
	}

	base := row * l.FeatureDim
	copy(l.Features[base:base+n], vec[:n])

	slot := l.HistoryHead - 1 // convert 1-indexed head to 0-indexed slot
	for d := 0; d < l.FeatureDim; d++ {
		v := float32(0)
		if d < n {
			v = vec[d]
		}
		l.History[(row*l.FeatureDim+d)*l.HistoryDepth+slot] = v
	}

	l.HistoryHead = l.HistoryHead%l.HistoryDepth + 1
	if l.HistoryLength < l.HistoryDepth {
		l.HistoryLength++
	}

	return nil
}

// GetHistory returns vertexID's feature history in layer, oldest-first, as
// HistoryLength rows of FeatureDim columns each — the transpose of the
// d_l x L storage orientation, since every consumer here iterates by
// reading (one full feature vector per time step). Wrap-aware: once the
// ring has filled, the oldest entry is the one the next push will
// overwrite.
func GetHistory(g *LayeredHyperGraph, layer LayerTag, vertexID string) ([][]float32, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	l, ok := g.Layers[layer]
	if !ok {
		return nil, wrapf(ErrLayerNotFound, "get_history: layer %q", layer)
	}
	row, ok := g.vertexIdx[vertexID]
	if !ok {
		return nil, wrapf(ErrVertexNotFound, "get_history: vertex %q", vertexID)
	}

	out := make([][]float32, l.HistoryLength)
	// The oldest valid slot is HistoryHead's current position when the
	// buffer is full (that's the next slot to be overwritten); when the
	// buffer isn't full yet, the oldest slot is always index 0.
	oldestSlot := 0
	if l.HistoryLength == l.HistoryDepth {
		oldestSlot = l.HistoryHead - 1
	}

	for i := 0; i < l.HistoryLength; i++ {
		slot := (oldestSlot + i) % l.HistoryDepth
		rowOut := make([]float32, l.FeatureDim)
		for d := 0; d < l.FeatureDim; d++ {
			rowOut[d] = l.History[(row*l.FeatureDim+d)*l.HistoryDepth+slot]
		}
		out[i] = rowOut
	}

	return out, nil
}
