package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendancePolicy
	Payroll    PayrollPolicy
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	// StoreTimeout bounds every transactional unit of work.
	StoreTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendancePolicy decides how all-zero punches are read. The legacy data
// model used 00:00:00 as "unset" for AM pairs while a 00:00:00 PM Out means
// a shift that ran until midnight, so the two halves are configured
// independently instead of unified.
type AttendancePolicy struct {
	AMZeroUnset    bool
	PMOutZeroUnset bool
}

// PayrollPolicy holds the employer-specific pay rules. None of these are
// hard-coded because standard day length, overtime premiums and statutory
// rates differ per employer.
type PayrollPolicy struct {
	StandardDayHours decimal.Decimal

	OvertimeRegularMultiplier decimal.Decimal
	OvertimeHolidayMultiplier decimal.Decimal
	OvertimeRestDayMultiplier decimal.Decimal

	TaxRate     decimal.Decimal
	NasfundRate decimal.Decimal

	// LateDeductionRate is charged once per late day.
	LateDeductionRate decimal.Decimal
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; variables come from the
	// process environment there.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	storeTimeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:         getEnv("DB_HOST", "localhost"),
		Port:         dbPort,
		User:         getEnv("DB_USER", "postgres"),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", "kumulworks-hris"),
		SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		StoreTimeout: storeTimeout,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	amZeroUnset, err := getEnvBool("ATTENDANCE_AM_ZERO_UNSET", true)
	if err != nil {
		return nil, err
	}
	pmOutZeroUnset, err := getEnvBool("ATTENDANCE_PM_OUT_ZERO_UNSET", false)
	if err != nil {
		return nil, err
	}
	config.Attendance = AttendancePolicy{
		AMZeroUnset:    amZeroUnset,
		PMOutZeroUnset: pmOutZeroUnset,
	}

	payroll, err := loadPayrollPolicy()
	if err != nil {
		return nil, err
	}
	config.Payroll = payroll

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPayrollPolicy() (PayrollPolicy, error) {
	policy := PayrollPolicy{}

	fields := []struct {
		key      string
		fallback string
		dst      *decimal.Decimal
	}{
		{"PAYROLL_STANDARD_DAY_HOURS", "8", &policy.StandardDayHours},
		{"PAYROLL_OT_MULTIPLIER_REGULAR", "1.5", &policy.OvertimeRegularMultiplier},
		{"PAYROLL_OT_MULTIPLIER_HOLIDAY", "2", &policy.OvertimeHolidayMultiplier},
		{"PAYROLL_OT_MULTIPLIER_RESTDAY", "2", &policy.OvertimeRestDayMultiplier},
		{"PAYROLL_TAX_RATE", "0.22", &policy.TaxRate},
		{"PAYROLL_NASFUND_RATE", "0.06", &policy.NasfundRate},
		{"PAYROLL_LATE_DEDUCTION_RATE", "0", &policy.LateDeductionRate},
	}
	for _, f := range fields {
		value, err := decimal.NewFromString(getEnv(f.key, f.fallback))
		if err != nil {
			return PayrollPolicy{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = value
	}

	return policy, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Payroll.StandardDayHours.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("PAYROLL_STANDARD_DAY_HOURS must be positive")
	}
	if c.Payroll.TaxRate.IsNegative() || c.Payroll.NasfundRate.IsNegative() {
		return fmt.Errorf("statutory rates must not be negative")
	}
	if c.Payroll.LateDeductionRate.IsNegative() {
		return fmt.Errorf("PAYROLL_LATE_DEDUCTION_RATE must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
