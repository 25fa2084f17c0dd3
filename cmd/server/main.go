package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newshub-app/newshub/filestore"
	"github.com/newshub-app/newshub/server"
	"github.com/newshub-app/newshub/store"
	"github.com/newshub-app/newshub/utils/dotenv"
	. "github.com/newshub-app/newshub/utils/log"
)

func init() {
	Log.Info("api server initialized")
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := store.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	store.DatabaseSetupAndMigration(db)

	assets, err := filestore.NewS3AssetStore(os.Getenv("ASSET_BUCKET"), os.Getenv("ASSET_ENDPOINT"))
	if err != nil {
		Log.Fatal("fail to set up asset store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	server.NewRouter(router, db, assets)

	Log.Info("api server starts up")
	router.Run(":8080")
}
