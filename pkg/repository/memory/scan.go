package memory

import (
	"context"

	"github.com/secmon-lab/scanhook/pkg/domain/model"
	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

func (r *Repository) UpsertRawEvent(ctx context.Context, record *model.ScanRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scans[record.Compare]; exists {
		return true, nil
	}

	r.scans[record.Compare] = copyScan(record)
	return false, nil
}

func (r *Repository) AttachResults(ctx context.Context, compare string, outcome *model.RunOutcome) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.scans[compare]
	if !exists {
		return false, nil
	}

	outcome.Apply(rec)
	return true, nil
}

func (r *Repository) FindLatest(ctx context.Context, ref, repository string) (*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref = model.NormalizeRef(ref)
	var latest *model.ScanRecord
	for _, rec := range r.scans {
		if rec.Ref != ref || rec.Repository != repository {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}

	if latest == nil {
		return nil, nil
	}
	return copyScan(latest), nil
}

func (r *Repository) FindByID(ctx context.Context, id types.ScanID) (*model.ScanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.scans {
		if rec.ID == id {
			return copyScan(rec), nil
		}
	}
	return nil, nil
}

func copyScan(src *model.ScanRecord) *model.ScanRecord {
	dst := *src
	if src.Payload != nil {
		dst.Payload = append([]byte(nil), src.Payload...)
	}
	if src.Results != nil {
		dst.Results = make([]*model.Finding, len(src.Results))
		for i, f := range src.Results {
			c := *f
			dst.Results[i] = &c
		}
	}
	if src.Matrix != nil {
		dst.Matrix = make(model.SeverityMatrix, len(src.Matrix))
		for k, v := range src.Matrix {
			dst.Matrix[k] = v
		}
	}
	return &dst
}
