package main

import (
	"fmt"
	"os"
	"strconv"

	"parcels/cmd"
	httpadapter "parcels/internal/adapters/in/http"
	"parcels/internal/adapters/out/postgres/departmentrepo"
	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/rulerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := mustConnectDB(configs)
	app := cmd.NewCompositionRoot(configs, db)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		AuthSecret:            goDotEnvVariable("AUTH_SECRET"),
		InsuranceThresholdEur: parseThreshold(goDotEnvVariable("INSURANCE_THRESHOLD")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// parseThreshold converts the configured insurance threshold.
// An unset or unparsable value yields zero, which the domain replaces with
// its default.
func parseThreshold(raw string) float64 {
	if raw == "" {
		return 0
	}

	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warnf("Invalid INSURANCE_THRESHOLD %q, using default", raw)
		return 0
	}
	return threshold
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&departmentrepo.DepartmentDTO{},
		&rulerepo.RuleDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := app.CreateHTTPServer()
	auth := httpadapter.NewAuthMiddleware(configs.AuthSecret)
	server.RegisterRoutes(e, auth)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
