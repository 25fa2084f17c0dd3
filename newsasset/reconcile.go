package newsasset

import (
	"context"
	"time"

	"github.com/newshub-app/newshub/model"
	Logger "github.com/newshub-app/newshub/utils/log"
	"github.com/pkg/errors"
)

// Report summarizes one reconciliation sweep over the two stores.
type Report struct {
	// RowsMissingBlob: News rows whose object is gone from the asset store.
	// These are reported only, never auto-deleted: the row is the system of
	// record and losing it silently would hide the inconsistency.
	RowsMissingBlob []model.News
	// OrphanObjects: object keys no News row references.
	OrphanObjects []string
	// PurgedObjects: subset of OrphanObjects old enough to be deleted.
	PurgedObjects []string
}

// ReconcileOrphans sweeps both stores and classifies the two orphan
// directions the non-atomic workflows can leave behind. Orphaned objects
// older than grace are purged; younger ones are spared because they may
// belong to an upload whose record step has not committed yet.
func (m *Manager) ReconcileOrphans(ctx context.Context, grace time.Duration) (*Report, error) {
	objects, err := m.assets.List(ctx)
	if err != nil {
		return nil, m.storageFailure("reconcile_list", err)
	}

	var rows []model.News
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "reconcile: fetch news rows")
	}

	byKey := make(map[string]bool, len(objects))
	for _, obj := range objects {
		byKey[obj.Key] = true
	}
	referenced := make(map[string]bool, len(rows))

	report := &Report{}
	for _, row := range rows {
		referenced[row.FileName] = true
		if !byKey[row.FileName] {
			report.RowsMissingBlob = append(report.RowsMissingBlob, row)
		}
	}

	now := time.Now()
	for _, obj := range objects {
		if referenced[obj.Key] {
			continue
		}
		report.OrphanObjects = append(report.OrphanObjects, obj.Key)
		if now.Sub(obj.LastModified) <= grace {
			continue
		}
		if err := m.assets.Delete(ctx, obj.Key); err != nil {
			// Keep sweeping: a failed purge stays an orphan and gets retried
			// on the next run.
			Logger.Log.Error("reconcile: fail to purge orphan object ", obj.Key, ": ", err)
			continue
		}
		report.PurgedObjects = append(report.PurgedObjects, obj.Key)
	}

	Logger.Log.Info("reconcile sweep: ", len(report.RowsMissingBlob), " rows missing blob, ",
		len(report.OrphanObjects), " orphan objects, ", len(report.PurgedObjects), " purged")
	return report, nil
}
