package cmd

// Config carries all runtime configuration, sourced from the environment.
type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	AuthSecret            string
	InsuranceThresholdEur float64
}
