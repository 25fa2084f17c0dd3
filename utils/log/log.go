package log

import (
	"os"

	"github.com/newshub-app/newshub/utils/dotenv"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	// JSON in production for log ingestion, plain text otherwise for better
	// readability.
	if os.Getenv("NEWSHUB_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": "newshub", "is_development": os.Getenv("NEWSHUB_ENV") != dotenv.ProdEnv},
	)
}
