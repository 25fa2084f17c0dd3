// The reconciler is the recovery policy for the non-atomic upload+record and
// delete+purge workflows: it sweeps both stores, reports rows whose blob is
// gone and purges orphaned blobs past a grace period. Meant to run
// periodically, e.g. from cron.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/newshub-app/newshub/filestore"
	"github.com/newshub-app/newshub/newsasset"
	"github.com/newshub-app/newshub/store"
	"github.com/newshub-app/newshub/utils/dotenv"
	. "github.com/newshub-app/newshub/utils/log"
)

var grace = flag.Duration("grace", 24*time.Hour, "orphaned objects younger than this are spared, they may belong to an in-flight upload")

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := store.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}

	assets, err := filestore.NewS3AssetStore(os.Getenv("ASSET_BUCKET"), os.Getenv("ASSET_ENDPOINT"))
	if err != nil {
		Log.Fatal("fail to set up asset store: ", err)
	}

	manager := newsasset.NewManager(db, assets)
	report, err := manager.ReconcileOrphans(context.Background(), *grace)
	if err != nil {
		Log.Fatal("reconciliation sweep failed: ", err)
	}

	for _, row := range report.RowsMissingBlob {
		Log.Warn("news row ", row.Id, " references missing object ", row.FileName)
	}
	Log.Info("reconciliation done: ", len(report.OrphanObjects), " orphans, ", len(report.PurgedObjects), " purged")
}
